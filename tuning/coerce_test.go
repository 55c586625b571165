package tuning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumericWidths(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int64", int64(2000), 2000},
		{"int32", int32(-1), -1},
		{"uint8", uint8(255), 255},
		{"float32", float32(0.5), 0.5},
		{"float64", 0.05, 0.05},
		{"bool", true, true},
		{"string", "gbdt", "gbdt"},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in))
		})
	}
}

func TestCoerceRecursesIntoMapsAndSlices(t *testing.T) {
	in := Params{
		"num_leaves": int32(63),
		"grid":       []any{int64(1), float32(2.5)},
		"nested":     map[string]any{"n_jobs": int64(-1)},
	}

	got := Coerce(in).(map[string]any)
	assert.Equal(t, 63, got["num_leaves"])
	assert.Equal(t, []any{1, 2.5}, got["grid"])
	assert.Equal(t, map[string]any{"n_jobs": -1}, got["nested"])
}

func TestCoerceFallsBackToString(t *testing.T) {
	// Outside the enumerated set: represented as a string, never an error.
	got := Coerce(3 * time.Second)
	assert.Equal(t, "3s", got)
}

func TestCoercedTreeIsJSONSerializable(t *testing.T) {
	in := map[string][]any{
		"num_leaves":       {int32(31), int64(63), 127},
		"scale_pos_weight": {float32(1), 137.42},
	}
	data, err := json.Marshal(Coerce(in))
	require.NoError(t, err)
	assert.Contains(t, string(data), "137.42")
}
