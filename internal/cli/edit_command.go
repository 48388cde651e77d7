package cli

import (
	"context"

	"task-manager/internal/validation"
)

// EditChanges holds the fields given on the command line. Nil means keep.
type EditChanges struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
	ClearDue    bool
}

// apply overlays the changes on a form built from the stored task
func (ch EditChanges) apply(form validation.TaskForm) validation.TaskForm {
	if ch.Title != nil {
		form.Title = *ch.Title
	}
	if ch.Description != nil {
		form.Description = *ch.Description
	}
	if ch.Status != nil {
		form.Status = *ch.Status
	}
	if ch.DueDate != nil {
		form.DueDate = *ch.DueDate
	}
	if ch.ClearDue {
		form.DueDate = ""
	}
	return form
}

// EditCommand handles the edit command
type EditCommand struct {
	app *App
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute starts from the stored task and sends the full edited task
func (c *EditCommand) Execute(ctx context.Context, id string, changes EditChanges) error {
	eh := NewErrorHandler()
	svc := c.app.service
	if err := svc.Load(ctx); err != nil {
		return eh.Handle("edit task", err)
	}

	task, err := svc.Lookup(id)
	if err != nil {
		return eh.Handle("edit task", err)
	}

	updated, err := svc.Update(ctx, id, changes.apply(validation.FormOf(task)))
	if err != nil {
		return eh.Handle("edit task", err)
	}

	c.app.printf("Updated task %s: %s (%s)\n", updated.ID, updated.Title, updated.Status)
	return nil
}
