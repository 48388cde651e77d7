package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what every command needs: the task service, the effective
// configuration and the streams commands read from and write to.
type App struct {
	service *services.TaskService
	config  *config.Config
	out     io.Writer
	in      *bufio.Reader
}

// NewApp creates a CLI application talking to client
func NewApp(client api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		service: services.NewTaskService(client,
			services.WithValidator(validation.NewValidatorWithConfig(cfg))),
		config: cfg,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetInput replaces the reader used for confirmation prompts
func (a *App) SetInput(r io.Reader) {
	a.in = bufio.NewReader(r)
}

// Service returns the task service the commands drive
func (a *App) Service() *services.TaskService {
	return a.service
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// promptConfirmer asks on the app's streams. Anything but y or yes declines,
// including end of input.
type promptConfirmer struct {
	app *App
}

func (p promptConfirmer) Confirm(prompt string) bool {
	p.app.printf("%s [y/N]: ", prompt)
	line, err := p.app.in.ReadString('\n')
	if err != nil && line == "" {
		p.app.printf("\n")
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// joinArgs lets multi-word values be given without quotes
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
