package cli

import (
	"context"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips a task between DONE and TODO
func (c *ToggleCommand) Execute(ctx context.Context, id string) error {
	eh := NewErrorHandler()
	svc := c.app.service
	if err := svc.Load(ctx); err != nil {
		return eh.Handle("toggle task", err)
	}

	task, err := svc.Toggle(ctx, id)
	if err != nil {
		return eh.Handle("toggle task", err)
	}

	c.app.printf("%s is now %s\n", task.Title, task.Status)
	return nil
}
