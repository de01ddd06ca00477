package core

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
)

// ParseValue normalizes a raw tool argument into a finite float64.
// Numeric strings are coerced; anything else is an InvalidInputError.
func ParseValue(raw any) (float64, error) {
	if raw == nil {
		return 0, &contract.InvalidInputError{Param: "value", Reason: "a number is required"}
	}
	return parseNumber("value", raw)
}

// ParseLabel returns the series label. A missing argument yields schema.DefaultLabel;
// an empty string is kept as given.
func ParseLabel(raw any) (string, error) {
	return parseString("label", raw, schema.DefaultLabel)
}

// ParseTitle returns the chart title, or schema.DefaultChartTitle when omitted.
func ParseTitle(raw any) (string, error) {
	return parseString("title", raw, schema.DefaultChartTitle)
}

// ParseDimension returns a whole-pixel chart dimension, or def when omitted.
// Fractional values are rejected rather than truncated. Range checks are left to
// ValidateChartOptions.
func ParseDimension(param string, raw any, def int) (int, error) {
	if raw == nil {
		return def, nil
	}
	v, err := parseNumber(param, raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &contract.InvalidInputError{Param: param, Reason: fmt.Sprintf("must be a whole number of pixels (received %v)", v)}
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, &contract.InvalidInputError{Param: param, Reason: fmt.Sprintf("out of range (received %v)", v)}
	}
	return int(v), nil
}

func parseString(param string, raw any, def string) (string, error) {
	switch t := raw.(type) {
	case nil:
		return def, nil
	case string:
		return t, nil
	default:
		return "", &contract.InvalidInputError{Param: param, Reason: fmt.Sprintf("expected a string (received %T)", raw)}
	}
}

// parseNumber accepts any Go numeric kind, json.Number and numeric strings.
func parseNumber(param string, raw any) (float64, error) {
	var v float64
	switch t := raw.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, &contract.InvalidInputError{Param: param, Reason: "not a number: " + t.String()}
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, &contract.InvalidInputError{Param: param, Reason: strconv.Quote(t) + " is not a number"}
		}
		v = f
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			v = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			v = rv.Float()
		default:
			return 0, &contract.InvalidInputError{Param: param, Reason: fmt.Sprintf("expected a number (received %T)", raw)}
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &contract.InvalidInputError{Param: param, Reason: "must be a finite number"}
	}
	return v, nil
}
