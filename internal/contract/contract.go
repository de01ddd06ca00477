// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/metricviz/schema"
)

// KVStore is the raw key-value backend holding serialized documents.
// This allows the state adapter to be tested without a real Redis or SQL server.
type KVStore interface {
	// Get returns the stored value, or ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// GetStatus returns status information about the backend and the given key.
	GetStatus(ctx context.Context, key string) (schema.StoreStatus, error)

	// Close releases the underlying connection pool.
	Close() error
}

// StateStore loads and persists the metrics document.
type StateStore interface {
	// Load returns the stored document, or an empty one when nothing is stored yet.
	Load(ctx context.Context) (schema.MetricsDocument, error)

	// Store replaces the stored document.
	Store(ctx context.Context, doc schema.MetricsDocument) error
}

// Renderer turns metric points into an encoded image.
type Renderer interface {
	// Render returns PNG bytes, ErrNoData for empty input, or ErrRendererUnavailable.
	Render(ctx context.Context, points []schema.MetricPoint, opts schema.ChartOptions) ([]byte, error)
}
