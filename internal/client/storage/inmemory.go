package storage

import (
	"context"
	"sync"

	"github.com/geosick-health/geosick/internal/common"
)

// InMemoryKV is a map-backed KV used in tests and in ephemeral mode, where
// nothing should survive process exit.
type InMemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{data: make(map[string][]byte)}
}

func (r *InMemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *InMemoryKV) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *InMemoryKV) Remove(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}
