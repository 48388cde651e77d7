package cli

import (
	"context"

	"task-manager/internal/tui"
	"task-manager/internal/view"
)

// UICommand starts the interactive task list
type UICommand struct {
	app *App
	run func(ctx context.Context, opts tui.Options) error
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	c := &UICommand{app: app}
	c.run = func(ctx context.Context, opts tui.Options) error {
		return tui.Run(ctx, app.service, opts)
	}
	return c
}

// Execute blocks until the user quits
func (c *UICommand) Execute(ctx context.Context, filter view.Filter, key view.SortKey) error {
	display := c.app.config.Display
	return c.run(ctx, tui.Options{
		Filter:        filter,
		Sort:          key,
		TimeFormat:    display.TimeFormat,
		DueSoonWindow: display.DueSoonWindow,
		Color:         display.Color,
		Now:           timeNow,
	})
}
