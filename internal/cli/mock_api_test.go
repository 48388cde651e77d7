package cli

import (
	"context"
	"fmt"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// mockAPI implements api.API in memory and records mutating calls
type mockAPI struct {
	tasks  []domain.Task
	nextID int
	now    time.Time

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created []domain.Draft
	updated []domain.Task
	deleted []string
}

func newMockAPI(tasks ...domain.Task) *mockAPI {
	return &mockAPI{
		tasks:  tasks,
		nextID: 100,
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Task(nil), m.tasks...), nil
}

func (m *mockAPI) CreateTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	m.created = append(m.created, draft)
	if m.createErr != nil {
		return nil, m.createErr
	}
	task := domain.Task{ID: fmt.Sprint(m.nextID), CreatedAt: m.now, UpdatedAt: m.now}.WithDraft(draft)
	m.nextID++
	m.tasks = append(m.tasks, task)
	return &task, nil
}

func (m *mockAPI) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	m.updated = append(m.updated, task)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			task.UpdatedAt = m.now
			m.tasks[i] = task
			return &task, nil
		}
	}
	return nil, errors.NewRemoteError("PUT", "/api/tasks/"+task.ID, 404)
}

func (m *mockAPI) DeleteTask(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.NewRemoteError("DELETE", "/api/tasks/"+id, 404)
}

var _ api.API = (*mockAPI)(nil)
