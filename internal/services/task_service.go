package services

import (
	"context"
	"fmt"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/store"
	"task-manager/internal/validation"
	"task-manager/internal/view"
)

// collectionKey sequences whole-collection fetches.
const collectionKey = ""

// TaskService turns user actions into backend calls and applies the
// confirmed results to the task store. The store is never changed before
// the backend answers, and a failed call leaves it untouched.
type TaskService struct {
	client     api.API
	store      *store.Store
	deriver    *view.Deriver
	normalizer *validation.TaskFormNormalizer
	seq        *Sequencer
	banner     *Banner
}

// Option configures a TaskService.
type Option func(*TaskService)

// WithStore makes the service share an existing store.
func WithStore(s *store.Store) Option {
	return func(ts *TaskService) { ts.store = s }
}

// WithValidator sets the form limits used by Add and Update.
func WithValidator(v *validation.Validator) Option {
	return func(ts *TaskService) { ts.normalizer = validation.NewTaskFormNormalizer(v) }
}

// NewTaskService creates a TaskService that talks to client.
func NewTaskService(client api.API, opts ...Option) *TaskService {
	ts := &TaskService{
		client:     client,
		store:      store.New(),
		normalizer: validation.NewTaskFormNormalizer(nil),
		seq:        NewSequencer(),
		banner:     &Banner{},
	}
	for _, opt := range opts {
		opt(ts)
	}
	ts.deriver = view.NewDeriver(ts.store)
	return ts
}

// Store exposes the task collection for read access.
func (s *TaskService) Store() *store.Store {
	return s.store
}

// Banner returns the current error banner, or "".
func (s *TaskService) Banner() string {
	return s.banner.Message()
}

// ClearBanner dismisses the error banner.
func (s *TaskService) ClearBanner() {
	s.banner.Clear()
}

// View derives the list for the given filter and sort key.
func (s *TaskService) View(filter view.Filter, key view.SortKey) view.View {
	return s.deriver.View(filter, key)
}

// Lookup finds a task in the store or returns a not-found error.
func (s *TaskService) Lookup(id string) (domain.Task, error) {
	task, ok := s.store.Get(id)
	if !ok {
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}
	return task, nil
}

// PrepareAdd validates form input for a new task.
func (s *TaskService) PrepareAdd(form validation.TaskForm) (domain.Draft, error) {
	return s.normalizer.Normalize(form)
}

// PrepareUpdate applies form input to the stored task with the given id.
func (s *TaskService) PrepareUpdate(id string, form validation.TaskForm) (domain.Task, error) {
	task, err := s.Lookup(id)
	if err != nil {
		return domain.Task{}, err
	}
	draft, err := s.normalizer.Normalize(form)
	if err != nil {
		return domain.Task{}, err
	}
	return task.WithDraft(draft), nil
}

// PrepareToggle flips the stored task between done and not done.
func (s *TaskService) PrepareToggle(id string) (domain.Task, error) {
	task, err := s.Lookup(id)
	if err != nil {
		return domain.Task{}, err
	}
	return task.Toggled(), nil
}

// DeletePrompt is the confirmation question shown before deleting task.
func DeletePrompt(task domain.Task) string {
	return fmt.Sprintf("Are you sure you want to delete the task %q?", task.Title)
}

// StartLoad prepares a fetch of the whole collection.
func (s *TaskService) StartLoad() Op {
	seq := s.seq.Begin(collectionKey)
	return func(ctx context.Context) Mutation {
		tasks, err := s.client.ListTasks(ctx)
		return Mutation{Kind: KindFetch, Seq: seq, Tasks: tasks, Err: err}
	}
}

// StartCreate prepares a create call for a validated draft. The task id is
// only known once the backend answers, so the stamp is recorded on Apply.
func (s *TaskService) StartCreate(draft domain.Draft) Op {
	seq := s.seq.Begin(collectionKey)
	return func(ctx context.Context) Mutation {
		task, err := s.client.CreateTask(ctx, draft)
		return Mutation{Kind: KindCreate, Seq: seq, Task: task, Err: err}
	}
}

// StartUpdate prepares a full-task update.
func (s *TaskService) StartUpdate(task domain.Task) Op {
	seq := s.seq.Begin(task.ID)
	return func(ctx context.Context) Mutation {
		updated, err := s.client.UpdateTask(ctx, task)
		return Mutation{Kind: KindUpdate, TaskID: task.ID, Seq: seq, Task: updated, Err: err}
	}
}

// StartDelete prepares a delete call.
func (s *TaskService) StartDelete(id string) Op {
	seq := s.seq.Begin(id)
	return func(ctx context.Context) Mutation {
		err := s.client.DeleteTask(ctx, id)
		return Mutation{Kind: KindDelete, TaskID: id, Seq: seq, Err: err}
	}
}

// Apply commits a settled backend call. On failure it logs the cause, sets
// the banner and returns the operation error; the store is unchanged. A
// successful result clears the banner. Results overtaken by a later
// request on the same task are dropped.
func (s *TaskService) Apply(m Mutation) error {
	if m.Err != nil {
		opErr := operationError(m.Kind, m.Err)
		if errors.ShouldLogError(m.Err) {
			logging.Errorf(fmt.Sprintf("%s task (%s)", m.Kind, errors.GetErrorCode(opErr)), m.Err)
		}
		s.banner.Set(errors.GetUserMessage(opErr))
		return opErr
	}

	switch m.Kind {
	case KindFetch:
		if !s.seq.Accept(collectionKey, m.Seq) {
			logging.Debugf("discarding stale fetch #%d\n", m.Seq)
			return nil
		}
		s.store.ReplaceAll(s.reconcile(m.Seq, m.Tasks))
	case KindCreate:
		if m.Task != nil {
			s.seq.Accept(m.Task.ID, m.Seq)
			s.store.Insert(*m.Task)
		}
	case KindUpdate:
		if !s.seq.Accept(m.TaskID, m.Seq) {
			logging.Debugf("discarding stale update #%d for task %s\n", m.Seq, m.TaskID)
			return nil
		}
		if m.Task != nil && !s.store.ReplaceOne(m.TaskID, *m.Task) {
			s.seq.Remove(m.TaskID, m.Seq)
		}
	case KindDelete:
		// The backend no longer has the task, whatever else is in flight.
		s.seq.Remove(m.TaskID, m.Seq)
		s.store.RemoveOne(m.TaskID)
	}

	s.banner.Clear()
	return nil
}

// reconcile merges a fetch stamped seq with results confirmed after it was
// issued: newer copies of tasks are kept, tasks deleted since are left out.
func (s *TaskService) reconcile(seq uint64, fetched []domain.Task) []domain.Task {
	merged := make([]domain.Task, 0, len(fetched))
	seen := make(map[string]bool, len(fetched))
	for _, task := range fetched {
		seen[task.ID] = true
		if s.seq.RemovedAfter(task.ID, seq) {
			continue
		}
		if s.seq.AppliedAfter(task.ID, seq) {
			if stored, ok := s.store.Get(task.ID); ok {
				task = stored
			}
		}
		merged = append(merged, task)
	}
	for _, task := range s.store.Tasks() {
		if !seen[task.ID] && s.seq.AppliedAfter(task.ID, seq) {
			merged = append(merged, task)
		}
	}
	s.seq.Settle(seq)
	return merged
}

func operationError(kind MutationKind, cause error) error {
	switch kind {
	case KindFetch:
		return errors.NewFetchFailedError(cause)
	case KindCreate:
		return errors.NewCreateFailedError(cause)
	case KindUpdate:
		return errors.NewUpdateFailedError(cause)
	default:
		return errors.NewDeleteFailedError(cause)
	}
}

// Load replaces the store with the backend's collection.
func (s *TaskService) Load(ctx context.Context) error {
	return s.Apply(s.StartLoad()(ctx))
}

// Add validates the form and creates the task. Validation errors are
// returned as-is and never reach the backend or the banner.
func (s *TaskService) Add(ctx context.Context, form validation.TaskForm) (*domain.Task, error) {
	draft, err := s.PrepareAdd(form)
	if err != nil {
		return nil, err
	}
	m := s.StartCreate(draft)(ctx)
	if err := s.Apply(m); err != nil {
		return nil, err
	}
	return m.Task, nil
}

// Update applies form input to an existing task and sends the full task.
func (s *TaskService) Update(ctx context.Context, id string, form validation.TaskForm) (*domain.Task, error) {
	task, err := s.PrepareUpdate(id, form)
	if err != nil {
		return nil, err
	}
	return s.sendUpdate(ctx, task)
}

// Toggle flips a task between DONE and TODO. IN_PROGRESS goes to DONE.
func (s *TaskService) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.PrepareToggle(id)
	if err != nil {
		return nil, err
	}
	return s.sendUpdate(ctx, task)
}

func (s *TaskService) sendUpdate(ctx context.Context, task domain.Task) (*domain.Task, error) {
	m := s.StartUpdate(task)(ctx)
	if err := s.Apply(m); err != nil {
		return nil, err
	}
	return m.Task, nil
}

// Delete asks confirm before deleting. It reports whether the delete was
// sent; a declined prompt makes no backend call.
func (s *TaskService) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	task, err := s.Lookup(id)
	if err != nil {
		return false, err
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt(task)) {
		return false, nil
	}
	return true, s.Apply(s.StartDelete(id)(ctx))
}
