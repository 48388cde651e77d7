package api

import (
	"context"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/validation"

	"github.com/google/uuid"
)

// API is the task backend contract the client side depends on.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Backend is the full set of operations served over REST.
type Backend interface {
	API
	GetTask(ctx context.Context, id string) (*domain.Task, error)
}

// Option configures the repository-backed implementation.
type Option func(*apiImpl)

// WithClock replaces time.Now for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *apiImpl) { a.now = now }
}

// WithIDGenerator replaces the UUID generator for new task IDs.
func WithIDGenerator(next func() string) Option {
	return func(a *apiImpl) { a.newID = next }
}

// WithValidator sets the limits enforced on incoming tasks.
func WithValidator(v *validation.Validator) Option {
	return func(a *apiImpl) { a.taskValidator = validation.NewTaskValidator(v) }
}

type apiImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	now           func() time.Time
	newID         func() string
}

// New creates a Backend that owns IDs and timestamps and stores tasks in repo.
func New(repo sqlite.Repository, opts ...Option) Backend {
	a := &apiImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(nil),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	dbTask, err := a.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := a.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// CreateTask stores a new task. An empty status means TODO.
func (a *apiImpl) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if draft.Status == "" {
		draft.Status = domain.StatusTodo
	}

	now := a.now().UTC()
	task := domain.Task{
		ID:        a.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}.WithDraft(draft)

	if err := a.taskValidator.ValidateTask(task); err != nil {
		return nil, err
	}

	dbTask := a.mapper.Task.ToDatabase(task)
	if err := a.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the editable fields of an existing task. An empty
// status keeps the stored one; a nil due date clears it.
func (a *apiImpl) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	existing, err := a.GetTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	draft := domain.DraftOf(task)
	if draft.Status == "" {
		draft.Status = existing.Status
	}
	updated := existing.WithDraft(draft)
	updated.UpdatedAt = a.now().UTC()

	if err := a.taskValidator.ValidateTask(updated); err != nil {
		return nil, err
	}

	dbTask := a.mapper.Task.ToDatabase(updated)
	if err := a.repo.UpdateTask(ctx, &dbTask); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	return a.repo.DeleteTask(ctx, id)
}
