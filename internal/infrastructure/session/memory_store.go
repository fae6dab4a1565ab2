package session

import (
	"context"
	"sync"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
)

// MemoryStore keeps sessions in process memory; they die with the process.
// Suitable for single-instance deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	sess map[string]entity.Session // token -> session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sess: make(map[string]entity.Session)}
}

func (m *MemoryStore) Save(_ context.Context, s entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess[s.Token] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*entity.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sess[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sess[token]; !ok {
		return repository.ErrNotFound
	}
	delete(m.sess, token)
	return nil
}

var _ repository.SessionStore = (*MemoryStore)(nil)
