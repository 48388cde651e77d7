package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TM_DEBUG", "")
	SetVerbose(false)
	assert.False(t, DebugEnabled(), "debug should be off when TM_DEBUG is empty")

	t.Setenv("TM_DEBUG", "1")
	assert.True(t, DebugEnabled(), "debug should be on when TM_DEBUG is set")

	t.Setenv("TM_DEBUG", "")
	SetVerbose(true)
	defer SetVerbose(false)
	assert.True(t, DebugEnabled(), "--verbose should turn debug on")
}

func TestDebugf(t *testing.T) {
	buf := captureOutput(t)
	SetVerbose(false)
	t.Setenv("TM_DEBUG", "")

	Debugf("hidden %s\n", "line")
	assert.Empty(t, buf.String())

	t.Setenv("TM_DEBUG", "1")
	Debugf("visible %s\n", "line")
	Debugln("second", "line")
	assert.Equal(t, "visible line\nsecond line\n", buf.String())
}

func TestErrorfAndRequest(t *testing.T) {
	buf := captureOutput(t)

	Errorf("fetch tasks", errors.New("connection refused"))
	Request("GET", "/api/tasks", 200, 15*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "fetch tasks: connection refused")
	assert.Contains(t, out, "GET /api/tasks 200 15ms")
}
