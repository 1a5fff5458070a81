package admission

import (
	"errors"
	"sync"
)

// ErrEmptyID is returned when trying to store a session with an empty ID.
var ErrEmptyID = errors.New("empty session ID")

// SessionStore is the main interface for the admission storage layer.
// Delete on an absent ID is not an error.
type SessionStore interface {
	Set(sess *Session) error
	Delete(id string) error
	GetAll() ([]*Session, error)
}

// LocalStore provides an in-memory implementation for storing sessions.
type LocalStore struct {
	mu sync.Mutex
	m  map[string]*Session
}

// NewLocalStore instantiates a new LocalStore with an empty map.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		m: map[string]*Session{},
	}
}

// Set stores or replaces a session.
// Returns ErrEmptyID if the session has an empty ID.
func (l *LocalStore) Set(sess *Session) error {
	if sess.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[sess.ID] = sess
	return nil
}

// Delete removes a session by ID. Removing an absent ID is a no-op.
func (l *LocalStore) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, id)
	return nil
}

// GetAll retrieves all sessions from the local store.
func (l *LocalStore) GetAll() ([]*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sessions := make([]*Session, 0, len(l.m))
	for _, s := range l.m {
		sessions = append(sessions, s)
	}
	return sessions, nil
}
