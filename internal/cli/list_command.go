package cli

import (
	"context"

	"task-manager/internal/view"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute fetches the collection and prints the derived view
func (c *ListCommand) Execute(ctx context.Context, filter view.Filter, key view.SortKey) error {
	svc := c.app.service
	if err := svc.Load(ctx); err != nil {
		return NewErrorHandler().Handle("list tasks", err)
	}

	NewListRenderer(c.app.config.Display, timeNow).Render(c.app.out, svc.View(filter, key))
	return nil
}
