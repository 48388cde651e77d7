package cli

import (
	"context"

	"task-manager/internal/services"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes a task after confirmation. With skipPrompt the user has
// confirmed up front.
func (c *DeleteCommand) Execute(ctx context.Context, id string, skipPrompt bool) error {
	eh := NewErrorHandler()
	svc := c.app.service
	if err := svc.Load(ctx); err != nil {
		return eh.Handle("delete task", err)
	}

	task, err := svc.Lookup(id)
	if err != nil {
		return eh.Handle("delete task", err)
	}

	var confirm services.Confirmer = promptConfirmer{app: c.app}
	if skipPrompt {
		confirm = services.AlwaysConfirm
	}

	sent, err := svc.Delete(ctx, id, confirm)
	if err != nil {
		return eh.Handle("delete task", err)
	}
	if !sent {
		c.app.printf("Delete cancelled.\n")
		return nil
	}

	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}
