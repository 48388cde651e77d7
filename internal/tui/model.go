// Package tui is the interactive terminal front end. Backend calls run as
// commands and their results are applied on the update loop, so the task
// store is only ever changed from one goroutine.
package tui

import (
	"context"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
	"task-manager/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// Options controls the initial list and how it is displayed.
type Options struct {
	Filter        view.Filter
	Sort          view.SortKey
	TimeFormat    string
	DueSoonWindow time.Duration
	Color         bool
	Now           func() time.Time
}

// Model is the bubbletea model of the task list.
type Model struct {
	ctx    context.Context
	svc    *services.TaskService
	opts   Options
	styles styles

	filter  view.Filter
	sort    view.SortKey
	cursor  int
	mode    mode
	form    *taskForm
	pending *domain.Task
	status  string
	loading bool
	width   int
}

// New creates the model. The initial fetch is the command returned by Init.
func New(ctx context.Context, svc *services.TaskService, opts Options) Model {
	if opts.Filter == "" {
		opts.Filter = view.FilterAll
	}
	if opts.Sort == "" {
		opts.Sort = view.SortByDate
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "Jan 2, 2006 03:04 PM"
	}
	if opts.DueSoonWindow <= 0 {
		opts.DueSoonWindow = view.DefaultDueSoonWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		ctx:     ctx,
		svc:     svc,
		opts:    opts,
		styles:  newStyles(opts.Color),
		filter:  opts.Filter,
		sort:    opts.Sort,
		loading: true,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, svc *services.TaskService, opts Options) error {
	program := tea.NewProgram(New(ctx, svc, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return runOp(m.ctx, m.svc.StartLoad())
}

func (m *Model) load() tea.Cmd {
	m.loading = true
	return runOp(m.ctx, m.svc.StartLoad())
}

func (m Model) current() view.View {
	return m.svc.View(m.filter, m.sort)
}

func (m Model) selected() (domain.Task, bool) {
	v := m.current()
	if v.Empty() {
		return domain.Task{}, false
	}
	return v.Tasks[clampCursor(m.cursor, len(v.Tasks))], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		return m.settle(msg.mutation), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// settle applies a finished call. Failures are shown by the banner.
func (m Model) settle(mutation services.Mutation) Model {
	if mutation.Kind == services.KindFetch {
		m.loading = false
	}
	if err := m.svc.Apply(mutation); err == nil {
		switch mutation.Kind {
		case services.KindCreate:
			m.status = "Added task"
		case services.KindUpdate:
			m.status = "Saved task"
		case services.KindDelete:
			m.status = "Deleted task"
		}
	} else {
		m.status = ""
	}
	m.cursor = clampCursor(m.cursor, len(m.current().Tasks))
	return m
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.current().Tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.current().Tasks))
	case "f":
		m.filter = m.filter.Next()
		m.cursor = 0
	case "s":
		m.sort = m.sort.Next()
		m.cursor = 0
	case "r":
		m.status = ""
		cmd := m.load()
		return m, cmd
	case "esc":
		m.svc.ClearBanner()
		m.status = ""
	case "a":
		m.form = newTaskForm()
		m.mode = modeForm
		m.status = ""
		return m, textinput.Blink
	case "e":
		task, ok := m.selected()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.form = editTaskForm(task)
		m.mode = modeForm
		m.status = ""
		return m, textinput.Blink
	case " ", "t":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		toggled, err := m.svc.PrepareToggle(task.ID)
		if err != nil {
			m.status = errors.GetUserMessage(err)
			return m, nil
		}
		return m, runOp(m.ctx, m.svc.StartUpdate(toggled))
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending = &task
		m.mode = modeConfirmDelete
		m.status = services.DeletePrompt(task) + " (y/n)"
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.pending.ID
		m.pending = nil
		m.mode = modeList
		m.status = ""
		return m, runOp(m.ctx, m.svc.StartDelete(id))
	case "n", "N", "esc":
		m.pending = nil
		m.mode = modeList
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.form = nil
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case formSubmit:
		return m.submitForm()
	}
	return m, cmd
}

// submitForm keeps the form open while it has field errors.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	var op services.Op
	if m.form.editing() {
		task, err := m.svc.PrepareUpdate(m.form.editID, m.form.values())
		if err != nil {
			return m.formFailed(err)
		}
		op = m.svc.StartUpdate(task)
	} else {
		draft, err := m.svc.PrepareAdd(m.form.values())
		if err != nil {
			return m.formFailed(err)
		}
		op = m.svc.StartCreate(draft)
	}
	m.form = nil
	m.mode = modeList
	m.status = "Saving..."
	return m, runOp(m.ctx, op)
}

func (m Model) formFailed(err error) (tea.Model, tea.Cmd) {
	if other := m.form.setError(err); other != nil {
		// The task went away while the form was open.
		m.form = nil
		m.mode = modeList
		m.status = errors.GetUserMessage(other)
	}
	return m, nil
}

func (m Model) View() string {
	return m.render()
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

var _ tea.Model = Model{}
