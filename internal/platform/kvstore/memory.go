package kvstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string]map[string]string{}}
}

// Load returns the value stored for key in namespace.
func (m *MemoryBackend) Load(_ context.Context, namespace string, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[namespace][key]
	return value, ok, nil
}

// Save stores value for key in namespace.
func (m *MemoryBackend) Save(_ context.Context, namespace string, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[namespace] == nil {
		m.values[namespace] = map[string]string{}
	}
	m.values[namespace][key] = value
	return nil
}
