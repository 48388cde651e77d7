package tui

import (
	stderrors "errors"

	"task-manager/internal/domain"
	"task-manager/internal/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Status", "Due date"}

// fieldNames maps form fields to the names used by validation errors.
var fieldNames = [fieldCount]string{
	validation.FieldTitle,
	validation.FieldDescription,
	validation.FieldStatus,
	validation.FieldDueDate,
}

// taskForm is the add/edit dialog. Title, description and due date are
// text inputs; status is a selector cycled with left/right or space.
type taskForm struct {
	editID      string
	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	status      domain.Status
	focus       formField
	errs        *validation.ValidationError
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 50
	return ti
}

// newTaskForm opens an empty form for a new task.
func newTaskForm() *taskForm {
	f := &taskForm{
		title:       newInput("What needs doing?"),
		description: newInput("Optional details"),
		dueDate:     newInput("YYYY-MM-DD or YYYY-MM-DD HH:MM"),
		status:      domain.StatusTodo,
	}
	f.setFocus(fieldTitle)
	return f
}

// editTaskForm opens a form filled from an existing task.
func editTaskForm(task domain.Task) *taskForm {
	f := newTaskForm()
	f.editID = task.ID
	values := validation.FormOf(task)
	f.title.SetValue(values.Title)
	f.description.SetValue(values.Description)
	f.dueDate.SetValue(values.DueDate)
	f.status = task.Status
	return f
}

func (f *taskForm) editing() bool {
	return f.editID != ""
}

func (f *taskForm) input(field formField) *textinput.Model {
	switch field {
	case fieldTitle:
		return &f.title
	case fieldDescription:
		return &f.description
	case fieldDueDate:
		return &f.dueDate
	default:
		return nil
	}
}

func (f *taskForm) setFocus(field formField) tea.Cmd {
	if in := f.input(f.focus); in != nil {
		in.Blur()
	}
	f.focus = field
	if in := f.input(field); in != nil {
		return in.Focus()
	}
	return nil
}

func (f *taskForm) move(delta int) tea.Cmd {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	return f.setFocus(formField(next))
}

func (f *taskForm) cycleStatus(delta int) {
	n := len(domain.Statuses)
	f.status = domain.Statuses[(f.status.Rank()+delta+n)%n]
}

// values returns the raw form input for normalization.
func (f *taskForm) values() validation.TaskForm {
	return validation.TaskForm{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status.String(),
		DueDate:     f.dueDate.Value(),
	}
}

// setError records field errors for inline display. Other errors are
// returned unchanged for the caller to report.
func (f *taskForm) setError(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		f.errs = ve
		return nil
	}
	return err
}

func (f *taskForm) fieldError(field formField) string {
	if f.errs == nil {
		return ""
	}
	return f.errs.FieldMessage(fieldNames[field])
}

// formAction is what a key press asks of the enclosing model.
type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
)

func (f *taskForm) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancel, nil
	case "enter":
		return formSubmit, nil
	case "tab", "down":
		return formContinue, f.move(1)
	case "shift+tab", "up":
		return formContinue, f.move(-1)
	}

	if f.focus == fieldStatus {
		switch msg.String() {
		case "right", "l", " ":
			f.cycleStatus(1)
		case "left", "h":
			f.cycleStatus(-1)
		}
		return formContinue, nil
	}

	in := f.input(f.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return formContinue, cmd
}
