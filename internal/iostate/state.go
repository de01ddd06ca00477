// Package iostate persists the metrics document in a key-value backend.
package iostate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
)

// StateAdapter stores the metrics document as JSON under a single key.
type StateAdapter struct {
	kv  contract.KVStore
	key string
}

var _ contract.StateStore = &StateAdapter{} // Compile-time check

// NewStateAdapter binds a key-value backend to the state key.
func NewStateAdapter(kv contract.KVStore, key string) *StateAdapter {
	if key == "" {
		key = schema.DefaultStateKey
	}
	return &StateAdapter{kv: kv, key: key}
}

// Key returns the key holding the document.
func (a *StateAdapter) Key() string {
	return a.key
}

// Load fetches and decodes the document. An absent key yields an empty document.
func (a *StateAdapter) Load(ctx context.Context) (schema.MetricsDocument, error) {
	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, contract.ErrKeyNotFound) {
		return core.NewDocument(), nil
	}
	if err != nil {
		return schema.MetricsDocument{}, fmt.Errorf("failed to load state %q: %w", a.key, err)
	}
	return Decode(a.key, raw)
}

// Store encodes the document and overwrites the key.
func (a *StateAdapter) Store(ctx context.Context, doc schema.MetricsDocument) error {
	raw, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("failed to store state %q: %w", a.key, err)
	}
	return nil
}

// Encode serializes a document into the wire format.
func Encode(doc schema.MetricsDocument) ([]byte, error) {
	if doc.Metrics == nil {
		doc.Metrics = []schema.MetricPoint{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return raw, nil
}

// Decode parses the wire format. Invalid JSON is reported as a CorruptStateError.
func Decode(key string, raw []byte) (schema.MetricsDocument, error) {
	var doc schema.MetricsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return schema.MetricsDocument{}, &contract.CorruptStateError{Key: key, Err: err}
	}
	if doc.Metrics == nil {
		doc.Metrics = []schema.MetricPoint{}
	}
	return doc, nil
}
