package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"task-manager/internal/domain"
)

// fakeAPI is an in-memory backend that records every mutating call.
type fakeAPI struct {
	mu      sync.Mutex
	tasks   []domain.Task
	nextID  int
	listErr error
	creates []domain.Draft
	updates []domain.Task
	deletes []string
}

func newFakeAPI(tasks ...domain.Task) *fakeAPI {
	return &fakeAPI{tasks: tasks, nextID: len(tasks) + 1}
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, draft)
	now := time.Now()
	task := domain.Task{
		ID:        fmt.Sprint(f.nextID),
		CreatedAt: now,
		UpdatedAt: now,
	}.WithDraft(draft)
	f.nextID++
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, task)
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task
		}
	}
	return &task, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}
