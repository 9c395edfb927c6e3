package authstore

import (
	"errors"
	"sync"
)

// ErrUnavailable is what MemoryBackend returns when a failure is injected.
var ErrUnavailable = errors.New("storage unavailable")

// MemoryBackend keeps values in process memory. The Fail* switches simulate
// an unavailable medium.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string

	FailReads   bool
	FailWrites  bool
	FailDeletes bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.values[key] = value
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDeletes {
		return ErrUnavailable
	}
	delete(m.values, key)
	return nil
}

// Close implements Backend.
func (m *MemoryBackend) Close() error { return nil }
