// Package blobs stores encrypted payloads by resource name. Objects are
// write-once: a second Put for a name fails with common.ErrFileExists.
package blobs

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gophkms/internal/common"
)

const (
	DriverMemory = "memory"
	DriverS3     = "s3"
)

type Store interface {
	Put(ctx context.Context, name string, payload []byte) error
	// Get returns common.ErrFileNotFound for unknown names.
	Get(ctx context.Context, name string) ([]byte, error)
}

type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(ctx context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[name]; ok {
		return common.ErrFileExists
	}
	m.objects[name] = slices.Clone(payload)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.objects[name]
	if !ok {
		return nil, common.ErrFileNotFound
	}
	return slices.Clone(p), nil
}
