package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"task-manager/internal/domain"
)

type call struct {
	Method string
	Draft  domain.Draft
	Task   domain.Task
	ID     string
}

// fakeAPI is an in-memory backend that records every call.
type fakeAPI struct {
	mu    sync.Mutex
	tasks []domain.Task
	calls []call
	next  int
	now   time.Time

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeAPI(tasks ...domain.Task) *fakeAPI {
	return &fakeAPI{tasks: tasks, now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeAPI) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeAPI) record(c call) {
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method
	}
	return out
}

func (f *fakeAPI) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(call{Method: "GET"})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(call{Method: "POST", Draft: draft})
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.next++
	now := f.tick()
	task := domain.Task{ID: fmt.Sprintf("srv-%d", f.next), CreatedAt: now, UpdatedAt: now}.WithDraft(draft)
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(call{Method: "PUT", Task: task, ID: task.ID})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	task.UpdatedAt = f.tick()
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
	f.record(call{Method: "DELETE", ID: id})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}
