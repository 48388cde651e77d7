// Package store holds the client's authoritative copy of the task
// collection. It is changed only after the backend confirms a mutation.
package store

import (
	"sync"

	"task-manager/internal/domain"
)

// Store is an in-memory, ordered task collection. Every mutation bumps
// Revision, which derived views use as their cache key.
type Store struct {
	mu       sync.RWMutex
	tasks    []domain.Task
	revision uint64
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// ReplaceAll swaps in a freshly fetched collection
func (s *Store) ReplaceAll(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]domain.Task(nil), tasks...)
	s.revision++
}

// Insert appends a newly created task
func (s *Store) Insert(task domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.revision++
}

// ReplaceOne swaps the task with the given id in place. It reports false,
// and changes nothing, when no such task exists.
func (s *Store) ReplaceOne(id string, task domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i] = task
	s.revision++
	return true
}

// RemoveOne drops the task with the given id, keeping the order of the rest
func (s *Store) RemoveOne(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.revision++
	return true
}

// Tasks returns a copy of the collection in store order
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get looks up a task by id
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// Len returns the number of tasks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Revision increases on every mutation
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
