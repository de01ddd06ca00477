package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/metricviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsToolError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantOK   bool
		wantKind schema.ToolErrorKind
	}{
		{"nil", nil, false, ""},
		{"no data", ErrNoData, true, schema.NoDataError},
		{"wrapped no data", fmt.Errorf("get chart: %w", ErrNoData), true, schema.NoDataError},
		{"renderer unavailable", fmt.Errorf("render: %w", ErrRendererUnavailable), true, schema.RendererUnavailableError},
		{"invalid input", &InvalidInputError{Param: "width", Reason: "too big"}, true, schema.InvalidInputError},
		{"corrupt state", &CorruptStateError{Key: "viz_state", Err: errors.New("bad json")}, false, ""},
		{"store failure", errors.New("connection refused"), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te, ok := AsToolError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, te)
				return
			}
			require.NotNil(t, te)
			assert.Equal(t, tt.wantKind, te.Kind)
		})
	}
}

func TestAsToolErrorNoDataMessage(t *testing.T) {
	te, ok := AsToolError(ErrNoData)
	require.True(t, ok)
	assert.JSONEq(t, `{"error":"No data to chart. Use push() to add data points.","kind":"no_data"}`, te.JSON())
}

func TestCorruptStateErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := fmt.Errorf("load: %w", &CorruptStateError{Key: "viz_state", Err: cause})

	var corrupt *CorruptStateError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, "viz_state", corrupt.Key)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"viz_state"`)
}

func TestInvalidInputErrorMessage(t *testing.T) {
	err := &InvalidInputError{Param: "value", Reason: "a number is required"}
	assert.Equal(t, "invalid value: a number is required", err.Error())
}

func TestMissingConfig(t *testing.T) {
	err := MissingConfig("store-connect")
	assert.ErrorIs(t, err, ErrMissingConfiguration)
	assert.Contains(t, err.Error(), "store-connect")
}
