package params

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	levels := []string{"CRITICAL", "ERROR", "WARNING", "INFO", "DEBUG"}
	tests := []struct {
		name string
		spec Spec
		raw  any
		want any
	}{
		{"string from string", Spec{Type: String}, "x", "x"},
		{"string from int", Spec{Type: String}, int64(3), "3"},
		{"int from string", Spec{Type: Int}, " 42 ", 42},
		{"int from toml int64", Spec{Type: Int}, int64(3), 3},
		{"int from json float", Spec{Type: Int}, float64(7), 7},
		{"float from string", Spec{Type: Float}, "1.5", 1.5},
		{"float from int", Spec{Type: Float}, 2, 2.0},
		{"bool true", Spec{Type: Bool}, "TrUe", true},
		{"bool one", Spec{Type: Bool}, "1", true},
		{"bool empty", Spec{Type: Bool}, "", false},
		{"bool false", Spec{Type: Bool}, "fAlsE", false},
		{"bool zero", Spec{Type: Bool}, "0", false},
		{"bool native", Spec{Type: Bool}, true, true},
		{"duration", Spec{Type: Duration}, "1m30s", 90 * time.Second},
		{"duration seconds", Spec{Type: Duration}, int64(2), 2 * time.Second},
		{"list", Spec{Type: StringSlice}, []any{"a", int64(1)}, []string{"a", "1"}},
		{"list from csv", Spec{Type: StringSlice}, "a, b", []string{"a", "b"}},
		{"choice folds case", Spec{Type: Choice, Choices: levels}, "DeBuG", "DEBUG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(&tt.spec, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		raw  any
	}{
		{"int from word", Spec{Name: "n", Type: Int}, "ten"},
		{"int from fraction", Spec{Name: "n", Type: Int}, 1.5},
		{"bool from yes", Spec{Name: "b", Type: Bool}, "yes"},
		{"bool from two", Spec{Name: "b", Type: Bool}, int64(2)},
		{"string from map", Spec{Name: "s", Type: String}, map[string]any{"a": 1}},
		{"unknown choice", Spec{Name: "c", Type: Choice, Choices: []string{"A"}}, "B"},
		{"bad duration", Spec{Name: "d", Type: Duration}, "soon"},
		{"int above range", Spec{Name: "n", Type: Int}, 1e20},
		{"int at two to the 63", Spec{Name: "n", Type: Int}, 9223372036854775808.0},
		{"int below range", Spec{Name: "n", Type: Int}, -1e20},
		{"int from NaN", Spec{Name: "n", Type: Int}, math.NaN()},
		{"int from overflowing text", Spec{Name: "n", Type: Int}, "99999999999999999999"},
		{"duration above range", Spec{Name: "d", Type: Duration}, "1e12"},
		{"duration below range", Spec{Name: "d", Type: Duration}, -1e12},
		{"duration from NaN", Spec{Name: "d", Type: Duration}, "NaN"},
		{"duration from infinity", Spec{Name: "d", Type: Duration}, "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(&tt.spec, tt.raw)
			require.Error(t, err)

			var coerceErr *TypeCoercionError
			require.True(t, errors.As(err, &coerceErr))
			assert.Equal(t, "TypeCoercionError", coerceErr.Kind())
			assert.Equal(t, tt.spec.Name, coerceErr.Param)
		})
	}
}

func TestCoerce_RangeLimits(t *testing.T) {
	n, err := Coerce(&Spec{Name: "n", Type: Int}, -9223372036854775808.0)
	require.NoError(t, err)
	assert.Equal(t, math.MinInt, n)

	d, err := Coerce(&Spec{Name: "d", Type: Duration}, "9e9")
	require.NoError(t, err)
	assert.Equal(t, 9e9*time.Second, d)
}

func TestTypeCoercionError_Message(t *testing.T) {
	err := &TypeCoercionError{Param: "cli.n", Type: Int, Value: "ten", Source: SourceEnvironment, Err: errNotInteger}
	assert.Equal(t, `invalid value "ten" for parameter "cli.n" from ENVIRONMENT: expected int: not an integer`, err.Error())
}
