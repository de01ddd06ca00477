package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestAppendBoundsHistory(t *testing.T) {
	doc := NewDocument()
	for i := range 150 {
		doc, _ = Append(doc, float64(i), "", baseTime.Add(time.Duration(i)*time.Second))
		assert.LessOrEqual(t, len(doc.Metrics), schema.MaxPoints)
	}

	require.Len(t, doc.Metrics, schema.MaxPoints)
	assert.InDelta(t, 50, doc.Metrics[0].Value, 0, "oldest points are dropped first")
	assert.InDelta(t, 149, doc.Metrics[schema.MaxPoints-1].Value, 0)
}

func TestAppendDefaults(t *testing.T) {
	doc, point := Append(NewDocument(), 3.5, "", baseTime)

	assert.Empty(t, point.Label, "an explicit empty label is kept")
	assert.Equal(t, "2024-05-01T10:00:00Z", point.Timestamp)
	require.NotNil(t, doc.LastUpdated)
	assert.Equal(t, point.Timestamp, *doc.LastUpdated)
}

func TestAppendTracksLastUpdated(t *testing.T) {
	doc := NewDocument()
	assert.Nil(t, doc.LastUpdated)

	var last schema.MetricPoint
	for i := range 3 {
		doc, last = Append(doc, float64(i), "x", baseTime.Add(time.Duration(i)*time.Minute))
	}
	require.NotNil(t, doc.LastUpdated)
	assert.Equal(t, last.Timestamp, *doc.LastUpdated)
	assert.Equal(t, doc.Metrics[len(doc.Metrics)-1].Timestamp, *doc.LastUpdated)
}

func TestAppendDoesNotAliasInput(t *testing.T) {
	original, _ := Append(NewDocument(), 1, "a", baseTime)
	original.Metrics = append(make([]schema.MetricPoint, 0, 10), original.Metrics...)

	updated, _ := Append(original, 2, "b", baseTime.Add(time.Second))
	updated.Metrics[0].Value = 99

	assert.Len(t, original.Metrics, 1)
	assert.InDelta(t, 1, original.Metrics[0].Value, 0)
}

func TestTakeSnapshot(t *testing.T) {
	snap := TakeSnapshot(schema.MetricsDocument{})
	assert.NotNil(t, snap.Metrics)
	assert.Zero(t, snap.Count)
	assert.Nil(t, snap.LastUpdated)

	doc, _ := Append(NewDocument(), 1, "a", baseTime)
	doc, _ = Append(doc, 2, "b", baseTime.Add(time.Second))
	snap = TakeSnapshot(doc)
	assert.Equal(t, 2, snap.Count)
	assert.Equal(t, doc.LastUpdated, snap.LastUpdated)
}

func TestReset(t *testing.T) {
	doc := Reset()
	assert.NotNil(t, doc.Metrics)
	assert.Empty(t, doc.Metrics)
	assert.Nil(t, doc.LastUpdated)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metrics":[],"last_updated":null}`, string(data))
}
