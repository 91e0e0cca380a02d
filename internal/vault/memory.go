package vault

import (
	"context"
	"fmt"
	"io"
	"sync"

	"cyberdl/internal/core"
)

// MemoryVault keeps payloads in memory. Useful for testing.
// Safe for concurrent use.
type MemoryVault struct {
	name     string
	mu       sync.RWMutex
	payloads map[string][]byte
}

var _ core.Vault = (*MemoryVault)(nil)

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:     name,
		payloads: make(map[string][]byte),
	}
}

// Put stores the payload and returns a memory:// URL.
func (m *MemoryVault) Put(_ context.Context, key string, r io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	m.payloads[key] = data
	m.mu.Unlock()

	return "memory://" + m.name + "/" + key, nil
}

// Get returns a stored payload. Only tests need it.
func (m *MemoryVault) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.payloads[key]
	return data, ok
}

// ValidateSetup always succeeds for the in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}
