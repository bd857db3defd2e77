package kv

import (
	"context"
	"sync"
)

// Memory is an in-process store
// Values are lost when the process exits
type Memory struct {
	values map[string]string
	lock   sync.RWMutex
}

// NewMemory returns an empty in-process store
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

// Get returns the value for key
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	val, found := m.values[key]
	if !found {
		return "", ErrNotFound
	}

	return val, nil
}

// Set stores the value
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.lock.Lock()
	m.values[key] = value
	m.lock.Unlock()

	return nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
