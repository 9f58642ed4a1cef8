// Package memory provides a thread-safe in-memory credstore backend
// for tests and demos.
package memory

import (
	"sync"

	"github.com/droplr/droplr-go/credstore"
	"github.com/droplr/droplr-go/internal/util"
)

// Backend is a thread-safe in-memory implementation of
// credstore.Backend.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ credstore.Backend = (*Backend)(nil)

// NewBackend creates an empty in-memory Backend.
func NewBackend() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

func (b *Backend) Put(name string, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[name] = util.CopyBytes(blob)
	return nil
}

func (b *Backend) Get(name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	blob, ok := b.data[name]
	if !ok {
		return nil, credstore.ErrProfileNotFound
	}
	return util.CopyBytes(blob), nil
}

func (b *Backend) List() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.data))
	for name := range b.data {
		names = append(names, name)
	}
	return names, nil
}

func (b *Backend) Delete(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.data[name]; !ok {
		return credstore.ErrProfileNotFound
	}
	delete(b.data, name)
	return nil
}
