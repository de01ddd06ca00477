package iostate

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStateAdapterLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key yields empty document", func(t *testing.T) {
		kv := &MockKVStore{}
		kv.On("Get", ctx, "viz_state").Return(nil, contract.ErrKeyNotFound)

		doc, err := NewStateAdapter(kv, "").Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, doc.Metrics)
		assert.Empty(t, doc.Metrics)
		assert.Nil(t, doc.LastUpdated)
		kv.AssertExpectations(t)
	})

	t.Run("corrupt document", func(t *testing.T) {
		kv := &MockKVStore{}
		kv.On("Get", ctx, "viz_state").Return([]byte("{not json"), nil)

		_, err := NewStateAdapter(kv, "viz_state").Load(ctx)
		var corrupt *contract.CorruptStateError
		require.ErrorAs(t, err, &corrupt)
		assert.Equal(t, "viz_state", corrupt.Key)
	})

	t.Run("null metrics decode to empty", func(t *testing.T) {
		kv := &MockKVStore{}
		kv.On("Get", ctx, "viz_state").Return([]byte(`{"metrics":null,"last_updated":null}`), nil)

		doc, err := NewStateAdapter(kv, "viz_state").Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, doc.Metrics)
		assert.Empty(t, doc.Metrics)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		kv := &MockKVStore{}
		kv.On("Get", ctx, "viz_state").Return(nil, boom)

		_, err := NewStateAdapter(kv, "viz_state").Load(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestStateAdapterStore(t *testing.T) {
	ctx := context.Background()

	t.Run("writes wire format", func(t *testing.T) {
		kv := &MockKVStore{}
		kv.On("Set", ctx, "custom", []byte(`{"metrics":[],"last_updated":null}`)).Return(nil)

		err := NewStateAdapter(kv, "custom").Store(ctx, schema.MetricsDocument{})
		require.NoError(t, err)
		kv.AssertExpectations(t)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		boom := errors.New("read only replica")
		kv := &MockKVStore{}
		kv.On("Set", ctx, "viz_state", mock.Anything).Return(boom)

		err := NewStateAdapter(kv, "viz_state").Store(ctx, schema.MetricsDocument{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := "2024-05-01T10:00:01.5+02:00"
	doc := schema.MetricsDocument{
		Metrics: []schema.MetricPoint{
			{Value: 1.5, Label: "cpu", Timestamp: "2024-05-01T10:00:00+02:00"},
			{Value: -3, Label: "mem", Timestamp: ts},
		},
		LastUpdated: &ts,
	}

	adapter := NewStateAdapter(NewMemoryStore(), "viz_state")
	require.NoError(t, adapter.Store(ctx, doc))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestDecodeKeepsForeignTimestamps(t *testing.T) {
	raw := []byte(`{"metrics":[{"value":2,"label":"default","ts":"2024-01-02T03:04:05.123456"}],"last_updated":"2024-01-02T03:04:05.123456"}`)

	doc, err := Decode("viz_state", raw)
	require.NoError(t, err)
	require.Len(t, doc.Metrics, 1)
	assert.Equal(t, "2024-01-02T03:04:05.123456", doc.Metrics[0].Timestamp)

	encoded, err := Encode(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(encoded))
}
