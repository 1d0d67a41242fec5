package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the session ID does not exist or has expired.
var ErrNotFound = errors.New("session: not found")

// Store persists per-visit session state.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// MemoryStore keeps sessions in process memory. Used for local development
// and as the fallback when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create issues a new idle session.
func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = cloneSession(s)
	m.mu.Unlock()

	return s, nil
}

// Get returns a copy of the stored session.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(s), nil
}

// Save writes the session back to the store.
func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session: session with ID required")
	}

	m.mu.Lock()
	m.sessions[s.ID] = cloneSession(s)
	m.mu.Unlock()

	return nil
}

func cloneSession(s *Session) *Session {
	cp := *s
	if s.Analysis != nil {
		res := *s.Analysis
		cp.Analysis = &res
	}
	return &cp
}
