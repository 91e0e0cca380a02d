package session

import (
	"sync"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
)

// MemoryRepository is an in-memory session store. Nothing survives the
// process; useful for tests and for running without durable state.
// Safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	session *model.Session
}

var _ core.SessionRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty (anonymous) in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Read() (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return nil, nil
	}
	s := *r.session
	return &s, nil
}

func (r *MemoryRepository) Write(s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.session = &copied
	return nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}
