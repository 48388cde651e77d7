package services

import (
	"context"

	"task-manager/internal/domain"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AlwaysConfirm approves every prompt, for callers that confirmed up front.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// MutationKind names the backend call a Mutation came from.
type MutationKind int

const (
	KindFetch MutationKind = iota
	KindCreate
	KindUpdate
	KindDelete
)

func (k MutationKind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindCreate:
		return "create"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Mutation is the settled result of a backend call. It carries no effect
// until passed to TaskService.Apply.
type Mutation struct {
	Kind   MutationKind
	TaskID string
	Seq    uint64
	Tasks  []domain.Task
	Task   *domain.Task
	Err    error
}

// Op is a backend call prepared on the control loop. It may run on any
// goroutine; its Mutation must be applied back on the loop.
type Op func(ctx context.Context) Mutation
