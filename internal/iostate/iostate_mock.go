package iostate

import (
	"context"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/mock"
)

// MockKVStore is a mock implementation of KVStore for testing.
type MockKVStore struct {
	mock.Mock
}

var _ contract.KVStore = &MockKVStore{} // Compile-time check

// Get implements the KVStore interface.
func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Error(1)
}

// Set implements the KVStore interface.
func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// GetStatus implements the KVStore interface.
func (m *MockKVStore) GetStatus(ctx context.Context, key string) (schema.StoreStatus, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the KVStore interface.
func (m *MockKVStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
