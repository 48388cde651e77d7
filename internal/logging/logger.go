package logging

import (
	"io"
	"log"
	"os"
	"time"
)

var (
	infoLogger  = log.New(os.Stderr, "[INFO] ", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "[ERROR] ", log.LstdFlags)
)

// SetOutput redirects every logger in this package, including debug output.
func SetOutput(w io.Writer) {
	output = w
	infoLogger.SetOutput(w)
	errorLogger.SetOutput(w)
}

// Infof logs an informational message
func Infof(format string, args ...interface{}) {
	infoLogger.Printf(format, args...)
}

// Errorf logs a failure together with the context it happened in
func Errorf(context string, err error) {
	errorLogger.Printf("%s: %v", context, err)
}

// Request logs one served HTTP request
func Request(method, path string, status int, duration time.Duration) {
	infoLogger.Printf("%s %s %d %v", method, path, status, duration)
}
