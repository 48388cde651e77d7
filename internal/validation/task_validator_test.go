package validation

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"task-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFormNormalizer_Normalize(t *testing.T) {
	n := NewTaskFormNormalizer(NewValidator().WithLocation(time.UTC))

	draft, err := n.Normalize(TaskForm{Title: "  Buy milk  "})
	require.NoError(t, err)
	assert.Equal(t, domain.Draft{Title: "Buy milk", Status: domain.StatusTodo}, draft)

	draft, err = n.Normalize(TaskForm{
		Title:       "Ship release",
		Description: "  tag and push  ",
		Status:      "in-progress",
		DueDate:     "2025-04-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "tag and push", draft.Description)
	assert.Equal(t, domain.StatusInProgress, draft.Status)
	require.NotNil(t, draft.DueDate)
	assert.True(t, draft.DueDate.Equal(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)))
}

func TestTaskFormNormalizer_TruncatesOnWrite(t *testing.T) {
	n := NewTaskFormNormalizer(nil)

	draft, err := n.Normalize(TaskForm{
		Title:       strings.Repeat("t", 150),
		Description: strings.Repeat("d", 700),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, utf8.RuneCountInString(draft.Title))
	assert.Equal(t, 500, utf8.RuneCountInString(draft.Description))

	draft, err = n.Normalize(TaskForm{Title: strings.Repeat("ü", 101)})
	require.NoError(t, err)
	assert.Equal(t, 100, utf8.RuneCountInString(draft.Title))
	assert.True(t, utf8.ValidString(draft.Title))
}

func TestTaskFormNormalizer_Errors(t *testing.T) {
	n := NewTaskFormNormalizer(nil)

	tests := []struct {
		name  string
		form  TaskForm
		field string
		typ   ValidationErrorType
	}{
		{"Empty title", TaskForm{Title: ""}, FieldTitle, ErrorTypeRequired},
		{"Whitespace title", TaskForm{Title: " \t\n "}, FieldTitle, ErrorTypeRequired},
		{"Unknown status", TaskForm{Title: "x", Status: "BLOCKED"}, FieldStatus, ErrorTypeInvalidValue},
		{"Bad due date", TaskForm{Title: "x", DueDate: "soon"}, FieldDueDate, ErrorTypeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.form)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			fieldErrs := ve.GetFieldErrors(tt.field)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.typ, fieldErrs[0].Type)
		})
	}
}

func TestFormOf(t *testing.T) {
	due := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	task := domain.Task{ID: "1", Title: "Write docs", Description: "api", Status: domain.StatusDone, DueDate: &due}

	form := FormOf(task)
	assert.Equal(t, TaskForm{Title: "Write docs", Description: "api", Status: "DONE", DueDate: "2025-01-02T03:04:00Z"}, form)

	draft, err := NewTaskFormNormalizer(nil).Normalize(form)
	require.NoError(t, err)
	assert.Equal(t, domain.DraftOf(task).Title, draft.Title)
	assert.True(t, draft.DueDate.Equal(due))
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	tv := NewTaskValidator(nil)

	tests := []struct {
		name   string
		task   domain.Task
		fields []string
	}{
		{"Valid", domain.Task{Title: "ok", Status: domain.StatusTodo}, nil},
		{"Max length title", domain.Task{Title: strings.Repeat("a", 100), Status: domain.StatusDone}, nil},
		{"Empty title", domain.Task{Title: "  ", Status: domain.StatusTodo}, []string{FieldTitle}},
		{"Long title", domain.Task{Title: strings.Repeat("a", 101), Status: domain.StatusTodo}, []string{FieldTitle}},
		{"Long description", domain.Task{Title: "a", Description: strings.Repeat("d", 501), Status: domain.StatusTodo}, []string{FieldDescription}},
		{"Invalid status", domain.Task{Title: "a", Status: "LATER"}, []string{FieldStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTask(tt.task)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			for _, f := range tt.fields {
				assert.NotEmpty(t, ve.GetFieldErrors(f), "expected an error on %s", f)
			}
		})
	}
}
