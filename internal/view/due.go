package view

import (
	"time"

	"task-manager/internal/domain"
)

// DefaultDueSoonWindow is how far ahead a deadline counts as due soon.
const DefaultDueSoonWindow = 24 * time.Hour

// DueState classifies a task's deadline for display.
type DueState int

const (
	DueNone DueState = iota
	DueSoon
	Overdue
)

func (s DueState) String() string {
	switch s {
	case DueSoon:
		return "due-soon"
	case Overdue:
		return "overdue"
	default:
		return "none"
	}
}

// Badge is the label shown next to a task, or "" for DueNone.
func (s DueState) Badge() string {
	switch s {
	case DueSoon:
		return "DUE SOON"
	case Overdue:
		return "OVERDUE"
	default:
		return ""
	}
}

// Classify uses DefaultDueSoonWindow.
func Classify(task domain.Task, now time.Time) DueState {
	return ClassifyWithin(task, now, DefaultDueSoonWindow)
}

// ClassifyWithin reports Overdue when the deadline is strictly before now,
// and DueSoon when it falls in (now, now+window]. A deadline exactly at now
// is neither.
func ClassifyWithin(task domain.Task, now time.Time, window time.Duration) DueState {
	if task.DueDate == nil {
		return DueNone
	}
	due := *task.DueDate
	switch {
	case due.Before(now):
		return Overdue
	case due.After(now) && !due.After(now.Add(window)):
		return DueSoon
	default:
		return DueNone
	}
}
