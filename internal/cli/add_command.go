package cli

import (
	"context"

	"task-manager/internal/validation"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task from form input. Over-long text is truncated.
func (c *AddCommand) Execute(ctx context.Context, form validation.TaskForm) error {
	task, err := c.app.service.Add(ctx, form)
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	c.app.printf("Added task %s: %s\n", task.ID, task.Title)
	return nil
}
