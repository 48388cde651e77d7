package validation

import (
	"strings"

	"task-manager/internal/domain"
)

// TaskForm is the raw, untrusted input of the add/edit form
type TaskForm struct {
	Title       string
	Description string
	Status      string
	DueDate     string
}

// FormOf fills a form from an existing task, as the edit flow starts from it
func FormOf(task domain.Task) TaskForm {
	return TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		DueDate:     FormatDueDate(task.DueDate),
	}
}

// TaskFormNormalizer turns form input into a draft. Title and description
// are trimmed and truncated to their limits rather than rejected; the only
// errors are a missing title, an unknown status and an unreadable due date.
type TaskFormNormalizer struct {
	validator *Validator
}

// NewTaskFormNormalizer creates a normalizer over the given validator
func NewTaskFormNormalizer(v *Validator) *TaskFormNormalizer {
	if v == nil {
		v = NewValidator()
	}
	return &TaskFormNormalizer{validator: v}
}

// Normalize validates the form and returns the draft to send to the backend
func (n *TaskFormNormalizer) Normalize(form TaskForm) (domain.Draft, error) {
	validationError := NewValidationError()

	title := Truncate(strings.TrimSpace(form.Title), n.validator.TitleMaxLength())
	if !n.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError(FieldTitle)
	}

	description := Truncate(strings.TrimSpace(form.Description), n.validator.DescriptionMaxLength())

	status, ok := n.validator.ParseStatus(form.Status)
	if !ok {
		validationError.AddInvalidValueError(FieldStatus, form.Status, "must be one of TODO, IN_PROGRESS, DONE")
	}

	dueDate, ok := n.validator.ParseDueDate(form.DueDate)
	if !ok {
		validationError.AddInvalidFormatError(FieldDueDate, form.DueDate, "YYYY-MM-DD or YYYY-MM-DDTHH:MM")
	}

	if validationError.HasErrors() {
		return domain.Draft{}, validationError
	}

	return domain.Draft{
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
	}, nil
}

// TaskValidator checks a complete task as received by the backend. Unlike
// the form it rejects over-long fields instead of truncating them.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTask validates a domain.Task object
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(task.Title) {
		validationError.AddRequiredError(FieldTitle)
	} else if ExceedsLength(task.Title, tv.validator.TitleMaxLength()) {
		validationError.AddInvalidLengthError(FieldTitle, task.Title, tv.validator.TitleMaxLength())
	}

	if ExceedsLength(task.Description, tv.validator.DescriptionMaxLength()) {
		validationError.AddInvalidLengthError(FieldDescription, task.Description, tv.validator.DescriptionMaxLength())
	}

	if !task.Status.Valid() {
		validationError.AddInvalidValueError(FieldStatus, task.Status, "must be one of TODO, IN_PROGRESS, DONE")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
