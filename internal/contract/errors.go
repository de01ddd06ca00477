package contract

import (
	"errors"
	"fmt"

	"github.com/huangsam/metricviz/schema"
)

// Sentinel errors shared across packages.
var (
	ErrMissingConfiguration = errors.New("missing required configuration")
	ErrKeyNotFound          = errors.New("key not found")
	ErrNoData               = errors.New("no data to chart. Use push() to add data points")
	ErrRendererUnavailable  = errors.New("chart rendering is not available in this build. Rebuild without the nochart tag")
)

// CorruptStateError reports a stored document that is not valid wire format.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state under key %q: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// InvalidInputError reports a tool parameter that failed validation.
type InvalidInputError struct {
	Param  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// MissingConfig wraps ErrMissingConfiguration with the name of the missing key.
func MissingConfig(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfiguration, key)
}

// AsToolError converts a recoverable error into its structured payload.
// It returns false for errors that must propagate, such as CorruptStateError.
func AsToolError(err error) (*schema.ToolError, bool) {
	var invalid *InvalidInputError
	switch {
	case err == nil:
		return nil, false
	case errors.Is(err, ErrNoData):
		return &schema.ToolError{Kind: schema.NoDataError, Message: "No data to chart. Use push() to add data points."}, true
	case errors.Is(err, ErrRendererUnavailable):
		return &schema.ToolError{Kind: schema.RendererUnavailableError, Message: err.Error()}, true
	case errors.As(err, &invalid):
		return &schema.ToolError{Kind: schema.InvalidInputError, Message: invalid.Error()}, true
	default:
		return nil, false
	}
}
