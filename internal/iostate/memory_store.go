package iostate

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
)

// MemoryStore keeps values in process memory. State is lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string][]byte
	written map[string]time.Time
}

var _ contract.KVStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string][]byte),
		written: make(map[string]time.Time),
	}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, contract.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.written[key] = time.Now()
	return nil
}

// GetStatus returns status information about the key.
func (m *MemoryStore) GetStatus(_ context.Context, key string) (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return schema.StoreStatus{
		Backend:       string(schema.MemoryBackend),
		Connected:     true,
		Key:           key,
		KeyPresent:    ok,
		SizeBytes:     int64(len(v)),
		LastWriteTime: m.written[key],
	}, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
