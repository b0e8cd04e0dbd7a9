package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampTimestamp(t *testing.T) {
	stamp := Stamp{Raw: map[string]any{"timestamp": "2024-05-01T08:30:00Z"}}
	ts, ok := stamp.Timestamp()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), ts)

	for name, raw := range map[string]map[string]any{
		"missing":   {},
		"empty":     {"timestamp": ""},
		"malformed": {"timestamp": "yesterday"},
		"wrongType": {"timestamp": 42},
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := Stamp{Raw: raw}.Timestamp()
			assert.False(t, ok)
		})
	}
}

func TestStampChainStartIDFallsBackToOwnID(t *testing.T) {
	withChain := Stamp{Raw: map[string]any{"id": float64(42), "chainStartStampId": float64(17)}}
	id, ok := withChain.ChainStartID()
	require.True(t, ok)
	assert.Equal(t, int64(17), id)

	withoutChain := Stamp{Raw: map[string]any{"id": float64(42)}}
	id, ok = withoutChain.ChainStartID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = Stamp{Raw: map[string]any{}}.ChainStartID()
	assert.False(t, ok)
}

func TestCoerceID(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
		ok    bool
	}{
		{name: "int64", value: int64(7), want: 7, ok: true},
		{name: "int", value: 7, want: 7, ok: true},
		{name: "float64", value: float64(7), want: 7, ok: true},
		{name: "numeric string", value: "7", want: 7, ok: true},
		{name: "non-numeric string", value: "seven", ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceID(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStampTypeValid(t *testing.T) {
	assert.True(t, StampStartWork.Valid())
	assert.True(t, StampStartBreak.Valid())
	assert.True(t, StampClockOut.Valid())
	assert.False(t, StampType("LUNCH").Valid())
	assert.False(t, StampType("").Valid())
}
