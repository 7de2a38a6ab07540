package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// TypeCoercionError reports a value that cannot be converted to the
// parameter's declared type.
type TypeCoercionError struct {
	Param  string
	Type   Type
	Value  any
	Source Source
	Err    error
}

func (e *TypeCoercionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid value %#v", e.Value)
	if e.Param != "" {
		fmt.Fprintf(&b, " for parameter %q", e.Param)
	}
	if e.Source.Valid() {
		fmt.Fprintf(&b, " from %s", e.Source)
	}
	fmt.Fprintf(&b, ": expected %s", e.Type)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TypeCoercionError) Unwrap() error { return e.Err }

// Kind names the error for user-facing reports.
func (e *TypeCoercionError) Kind() string { return "TypeCoercionError" }

var (
	errNotScalar  = errors.New("not a scalar value")
	errNotInteger = errors.New("not an integer")
	errBadBool    = errors.New(`accepted values are "true", "1", "false", "0" or empty`)
	errNoChoice   = errors.New("not one of the allowed choices")
	errOutOfRange = errors.New("out of range")
)

// Coerce converts raw to the declared type of spec. Environment and
// configuration values arrive as strings or primitive scalars; command line
// values are usually already typed.
func Coerce(spec *Spec, raw any) (any, error) {
	v, err := coerce(spec, raw)
	if err != nil {
		return nil, &TypeCoercionError{Param: spec.Name, Type: spec.Type, Value: raw, Err: err}
	}
	return v, nil
}

func coerce(spec *Spec, raw any) (any, error) {
	switch spec.Type {
	case String:
		return toString(raw)
	case Int:
		return toInt(raw)
	case Float:
		return toFloat(raw)
	case Bool:
		return ParseBool(raw)
	case Duration:
		return toDuration(raw)
	case StringSlice:
		return toStrings(raw)
	case Choice:
		s, err := toString(raw)
		if err != nil {
			return nil, err
		}
		return matchChoice(spec.Choices, s)
	}
	return nil, fmt.Errorf("unsupported type %s", spec.Type)
}

// ParseBool applies the boolean coercion rules: case-insensitive "true" or
// "1" are true; empty, "false" and "0" are false.
func ParseBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "", "false", "0":
			return false, nil
		}
		return false, errBadBool
	case int, int64, uint64, float64:
		n, err := toInt(v)
		if err != nil || (n != 0 && n != 1) {
			return false, errBadBool
		}
		return n == 1, nil
	}
	return false, errBadBool
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool, int, int64, uint64, float64, json.Number, time.Duration:
		return fmt.Sprint(v), nil
	case fmt.Stringer:
		// TOML dates and times
		return v.String(), nil
	}
	return "", errNotScalar
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, errNotInteger
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, errNotInteger
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, errNotInteger
		}
		// -MinInt is a power of two, so exact as a float64; MaxInt may not be.
		if v < float64(math.MinInt) || v >= -float64(math.MinInt) {
			return 0, errOutOfRange
		}
		return int(v), nil
	case json.Number:
		return toInt(string(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	}
	return 0, errNotInteger
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, errNotScalar
}

// toDuration accepts Go duration strings; bare numbers are seconds.
func toDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return seconds(f)
		}
		return time.ParseDuration(s)
	case int, int64, uint64, float64:
		f, err := toFloat(v)
		if err != nil {
			return 0, err
		}
		return seconds(f)
	}
	return 0, errNotScalar
}

func seconds(f float64) (time.Duration, error) {
	ns := f * float64(time.Second)
	if math.IsNaN(ns) || ns < math.MinInt64 || ns >= -math.MinInt64 {
		return 0, errOutOfRange
	}
	return time.Duration(ns), nil
}

// toStrings accepts lists of scalars or a comma-separated string.
func toStrings(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := toString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
	s, err := toString(raw)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func matchChoice(choices []string, s string) (string, error) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(s))
	for _, c := range choices {
		if fold.String(c) == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", errNoChoice, strings.Join(choices, ", "))
}
