package memory

import "sync"

// SessionStore tracks short-lived per-user dialogue state. Each slot holds
// at most one value per user and is overwritten, not queued, on repeated
// writes.
type SessionStore interface {
	// PendingPropertyRequest is the original message that could not be
	// resolved to a property, awaiting disambiguation.
	PendingPropertyRequest(userID int64) (string, bool)
	SetPendingPropertyRequest(userID int64, message string)
	ClearPendingPropertyRequest(userID int64)

	// PendingTaskConfirmation is the task description awaiting a yes/no
	// completion confirmation.
	PendingTaskConfirmation(userID int64) (string, bool)
	SetPendingTaskConfirmation(userID int64, description string)
	ClearPendingTaskConfirmation(userID int64)

	// LastReply is the most recent agent reply, injected into the next
	// provider request as conversational memory.
	LastReply(userID int64) (string, bool)
	SetLastReply(userID int64, reply string)
}

// InMemorySession is the process-local SessionStore. State does not survive
// a restart.
type InMemorySession struct {
	mu                sync.RWMutex
	pendingProperties map[int64]string
	pendingTasks      map[int64]string
	lastReplies       map[int64]string
}

// NewInMemorySession creates an empty session store.
func NewInMemorySession() *InMemorySession {
	return &InMemorySession{
		pendingProperties: make(map[int64]string),
		pendingTasks:      make(map[int64]string),
		lastReplies:       make(map[int64]string),
	}
}

func (s *InMemorySession) PendingPropertyRequest(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.pendingProperties[userID]
	return v, ok
}

func (s *InMemorySession) SetPendingPropertyRequest(userID int64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingProperties[userID] = message
}

func (s *InMemorySession) ClearPendingPropertyRequest(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingProperties, userID)
}

func (s *InMemorySession) PendingTaskConfirmation(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.pendingTasks[userID]
	return v, ok
}

func (s *InMemorySession) SetPendingTaskConfirmation(userID int64, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingTasks[userID] = description
}

func (s *InMemorySession) ClearPendingTaskConfirmation(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingTasks, userID)
}

func (s *InMemorySession) LastReply(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.lastReplies[userID]
	return v, ok
}

func (s *InMemorySession) SetLastReply(userID int64, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReplies[userID] = reply
}
