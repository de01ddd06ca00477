package iostate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLStore(context.Background(), stateTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dbPath
}

func TestSQLStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSQLiteStore(t)

	_, err := store.Get(ctx, "viz_state")
	assert.ErrorIs(t, err, contract.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "viz_state", []byte(`{"metrics":[]}`)))
	require.NoError(t, store.Set(ctx, "viz_state", []byte(`{"metrics":[],"last_updated":null}`)))

	got, err := store.Get(ctx, "viz_state")
	require.NoError(t, err)
	assert.Equal(t, `{"metrics":[],"last_updated":null}`, string(got))
}

func TestSQLStoreStatus(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSQLiteStore(t)

	status, err := store.GetStatus(ctx, "viz_state")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.False(t, status.KeyPresent)

	for range 3 {
		require.NoError(t, store.Set(ctx, "viz_state", []byte("abcd")))
	}

	status, err = store.GetStatus(ctx, "viz_state")
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.KeyPresent)
	assert.EqualValues(t, 4, status.SizeBytes)
	assert.EqualValues(t, 3, status.Version)
	assert.False(t, status.LastWriteTime.IsZero())
}

func TestSQLStoreWithStateAdapter(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSQLiteStore(t)
	adapter := NewStateAdapter(store, "viz_state")

	ts := "2024-05-01T10:00:00Z"
	doc := schema.MetricsDocument{
		Metrics:     []schema.MetricPoint{{Value: 42, Label: "temp", Timestamp: ts}},
		LastUpdated: &ts,
	}
	require.NoError(t, adapter.Store(ctx, doc))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestDropSQLiteStore(t *testing.T) {
	store, dbPath := newTestSQLiteStore(t)
	require.NoError(t, store.Close())

	require.NoError(t, DropStore(context.Background(), schema.SQLiteBackend, dbPath, "viz_state"))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Dropping twice is fine
	assert.NoError(t, DropStore(context.Background(), schema.SQLiteBackend, dbPath, "viz_state"))
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "metricviz_state", false},
		{"leading underscore", "_state", false},
		{"empty", "", true},
		{"leading digit", "1state", true},
		{"injection", "state; DROP TABLE x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`metricviz_state`", quoteTableName("metricviz_state", schema.MySQLBackend))
	assert.Equal(t, `"metricviz_state"`, quoteTableName("metricviz_state", schema.PostgreSQLBackend))
	assert.Equal(t, `"metricviz_state"`, quoteTableName("metricviz_state", schema.SQLiteBackend))
}
