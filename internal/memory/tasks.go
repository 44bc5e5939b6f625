// Package memory holds the agent's volatile per-user state: follow-up
// tasks, pending disambiguations, and the last reply.
//
// Everything here lives in process memory only. A restart silently resets
// every user's conversation state; that volatility is intended, and the
// SessionStore interface exists so a persistent backing can be swapped in
// later.
package memory

import (
	"strings"
	"sync"
)

// Task is a short free-text follow-up with a completion flag.
type Task struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskStore tracks follow-up tasks per user, in insertion order.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[int64][]Task
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int64][]Task)}
}

// AddTask stores a task for the user. Blank descriptions are ignored; a
// task with the same exact description is re-opened rather than duplicated.
func (s *TaskStore) AddTask(userID int64, description string) {
	description = strings.TrimSpace(description)
	if description == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.tasks[userID]
	for i := range tasks {
		if tasks[i].Description == description {
			tasks[i].Completed = false
			return
		}
	}
	s.tasks[userID] = append(tasks, Task{Description: description})
}

// Tasks returns the user's tasks in insertion order. The returned slice is
// a copy; mutating it does not touch the store.
func (s *TaskStore) Tasks(userID int64) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := s.tasks[userID]
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// CompleteTask marks tasks complete. With a description, every exact match
// is completed (no-op when nothing matches); with an empty description,
// every task for the user is completed.
func (s *TaskStore) CompleteTask(userID int64, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := s.tasks[userID]
	if !ok {
		return
	}

	description = strings.TrimSpace(description)
	for i := range tasks {
		if description == "" || tasks[i].Description == description {
			tasks[i].Completed = true
		}
	}
}
