package tui

import (
	"context"

	"task-manager/internal/services"

	tea "github.com/charmbracelet/bubbletea"
)

// settledMsg carries the result of a backend call back to the update loop,
// where it is applied to the store.
type settledMsg struct {
	mutation services.Mutation
}

// runOp performs op off the update loop.
func runOp(ctx context.Context, op services.Op) tea.Cmd {
	return func() tea.Msg {
		return settledMsg{mutation: op(ctx)}
	}
}
