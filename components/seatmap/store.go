package seatmap

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("seatmap: session not found")

// Session is one loaded template with its live viewport.
type Session struct {
	ID         string
	TemplateID string
	Result     *Result
	Host       *GeometryHost
	Viewport   *Viewport
	CreatedAt  time.Time
}

// SessionStore persists builder sessions.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
}

// InMemorySessionStore provides a concurrency-safe default store.
type InMemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]*Session
}

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		data: make(map[string]*Session),
	}
}

// Save stores the session under its id.
func (s *InMemorySessionStore) Save(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("seatmap: session store requires a session id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = session
	return nil
}

// Get returns the session or ErrSessionNotFound.
func (s *InMemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes and returns the session.
func (s *InMemorySessionStore) Delete(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.data[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.data, id)
	return session, nil
}

// List returns sessions ordered by creation time.
func (s *InMemorySessionStore) List(_ context.Context) ([]*Session, error) {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.data))
	for _, session := range s.data {
		out = append(out, session)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
