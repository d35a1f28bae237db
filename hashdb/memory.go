package hashdb

import (
	"context"
	"sync"

	"github.com/direct-connect/go-tiger"
)

// NewMemory creates an in-memory hash cache. It's safe for concurrent use.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]tiger.Hash)}
}

// Memory is a Cache that keeps hashes in memory.
type Memory struct {
	mu sync.RWMutex
	m  map[string]tiger.Hash
}

func (m *Memory) Lookup(_ context.Context, k FileKey) (tiger.Hash, bool, error) {
	m.mu.RLock()
	h, ok := m.m[k.String()]
	m.mu.RUnlock()
	return h, ok, nil
}

func (m *Memory) Store(_ context.Context, k FileKey, h tiger.Hash) error {
	m.mu.Lock()
	m.m[k.String()] = h
	m.mu.Unlock()
	return nil
}

// Len returns the number of cached hashes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

func (m *Memory) Close() error {
	return nil
}
