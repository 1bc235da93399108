package repository

import (
	"context"
	"sync"

	"github.com/globalsolutions/website/backend/internal/content"
)

// MemoryRepo keeps documents in process memory. Used by tests and by
// CONTENT_BACKEND=memory for throwaway local runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]content.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]content.Document)}
}

func (m *MemoryRepo) Get(_ context.Context, key string) (*content.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	d.Payload = append([]byte(nil), d.Payload...)
	return &d, nil
}

func (m *MemoryRepo) Put(_ context.Context, doc *content.Document) error {
	cp := *doc
	cp.Payload = append([]byte(nil), doc.Payload...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[doc.Key] = cp
	return nil
}
