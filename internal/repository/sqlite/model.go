package sqlite

import "time"

// Task is the stored form of a task row.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	DueDate     *time.Time // NULL when the task has no deadline
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
