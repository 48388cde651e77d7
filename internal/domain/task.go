package domain

import (
	"strings"
	"time"
)

// Status is the workflow state of a task. It is the only source of truth for
// completion; see Task.Completed.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every status in rank order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus accepts the wire form ("IN_PROGRESS") as well as the relaxed
// forms users type on the command line ("in-progress", "in progress").
func ParseStatus(s string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	status := Status(normalized)
	return status, status.Valid()
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Rank orders statuses TODO(0) < IN_PROGRESS(1) < DONE(2).
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return len(Statuses)
	}
}

// IsActive reports whether a task in this status still needs work.
func (s Status) IsActive() bool {
	return s == StatusTodo || s == StatusInProgress
}

// Next cycles through the statuses in rank order.
func (s Status) Next() Status {
	return Statuses[(s.Rank()+1)%len(Statuses)]
}

func (s Status) String() string {
	return string(s)
}

// Task represents a task in the domain model.
// This is a pure domain model without transport or database concerns.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Completed is derived from Status; it is never stored separately.
func (t Task) Completed() bool {
	return t.Status == StatusDone
}

// HasDueDate reports whether the task has a deadline.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// Toggled returns a copy flipped between done and not done.
// DONE goes back to TODO; TODO and IN_PROGRESS go to DONE.
func (t Task) Toggled() Task {
	if t.Status == StatusDone {
		t.Status = StatusTodo
	} else {
		t.Status = StatusDone
	}
	return t
}

// WithDraft returns a copy carrying the editable fields of d.
func (t Task) WithDraft(d Draft) Task {
	t.Title = d.Title
	t.Description = d.Description
	t.Status = d.Status
	t.DueDate = d.DueDate
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Draft is the client-editable part of a task, as produced by the form.
// The server assigns ID and timestamps when a draft is created.
type Draft struct {
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time
}

// NewDraft creates a TODO draft with the given title.
func NewDraft(title string) Draft {
	return Draft{
		Title:  title,
		Status: StatusTodo,
	}
}

// DraftOf extracts the editable fields of a task.
func DraftOf(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}
