// Package storage abstracts the durable key-value store the storefront core
// persists into. Browsers give this role to cookies and localStorage; here it
// is a small port with in-memory, file and Redis backends so tests and
// embedders can choose.
package storage

import (
	"context"
	"sync"
)

// Port is the minimal key-value contract the core depends on.
// Get reports presence explicitly so an empty value is distinguishable from
// an absent key.
type Port interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is a Port backed by a map. Safe for concurrent use. The zero value
// is not usable; construct with NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
