package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"task-manager/internal/domain"
)

// TaskPayload is the JSON form of a task on the wire. Completed is always
// derived from Status when writing and ignored when reading.
type TaskPayload struct {
	ID          TaskID     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *Timestamp `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// ErrorPayload is the body of a rejected request.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PayloadFromDraft builds the body of a create request.
func PayloadFromDraft(d domain.Draft) TaskPayload {
	return TaskPayload{
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status.String(),
		DueDate:     timestampPtr(d.DueDate),
		Completed:   d.Status == domain.StatusDone,
	}
}

// PayloadFromTask builds the full representation of a stored task.
func PayloadFromTask(t domain.Task) TaskPayload {
	p := PayloadFromDraft(domain.DraftOf(t))
	p.ID = TaskID(t.ID)
	if !t.CreatedAt.IsZero() {
		p.CreatedAt = &Timestamp{t.CreatedAt}
	}
	if !t.UpdatedAt.IsZero() {
		p.UpdatedAt = &Timestamp{t.UpdatedAt}
	}
	return p
}

// Draft returns the client-editable fields. An empty status stays empty
// so the receiver can apply its own default.
func (p TaskPayload) Draft() domain.Draft {
	status := domain.Status(strings.TrimSpace(p.Status))
	if parsed, ok := domain.ParseStatus(p.Status); ok {
		status = parsed
	}
	return domain.Draft{
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
		DueDate:     p.DueDate.timePtr(),
	}
}

// Task converts a server response into a domain task. Unknown statuses
// read back as TODO.
func (p TaskPayload) Task() domain.Task {
	status, ok := domain.ParseStatus(p.Status)
	if !ok {
		status = domain.StatusTodo
	}
	task := domain.Task{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
		DueDate:     p.DueDate.timePtr(),
	}
	if p.CreatedAt != nil {
		task.CreatedAt = p.CreatedAt.Time
	}
	if p.UpdatedAt != nil {
		task.UpdatedAt = p.UpdatedAt.Time
	}
	return task
}

// TaskID accepts both string and numeric identifiers and keeps them opaque.
type TaskID string

func (id *TaskID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// Timestamp is written as RFC 3339. Reading also accepts ISO 8601 local
// date-times without a zone, which are taken as UTC.
type Timestamp struct {
	time.Time
}

var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range localDateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func timestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{*t}
}

func (t *Timestamp) timePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
