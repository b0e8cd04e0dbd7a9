package crewmeister

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJWTPayload(t *testing.T) {
	t.Parallel()

	token := signedToken(t, map[string]any{
		"userId": float64(101),
		"exp":    float64(1714550400),
	})

	claims := decodeJWTPayload(token)
	assert.Equal(t, float64(101), claims["userId"])
	assert.Equal(t, float64(1714550400), claims["exp"])
}

func TestDecodeJWTPayloadMalformedTokenYieldsEmptyClaims(t *testing.T) {
	t.Parallel()

	for name, token := range map[string]string{
		"empty":       "",
		"no dots":     "not-a-token",
		"two parts":   "abc.def",
		"bad payload": "abc.!!!.ghi",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, decodeJWTPayload(token))
		})
	}
}

func TestClaimExpiration(t *testing.T) {
	t.Parallel()

	want := time.Unix(1714550400, 0).UTC()

	tests := []struct {
		name   string
		claims map[string]any
		want   time.Time
	}{
		{name: "float64", claims: map[string]any{"exp": float64(1714550400)}, want: want},
		{name: "int64", claims: map[string]any{"exp": int64(1714550400)}, want: want},
		{name: "json number", claims: map[string]any{"exp": json.Number("1714550400")}, want: want},
		{name: "missing", claims: map[string]any{}},
		{name: "unusable", claims: map[string]any{"exp": "tomorrow"}},
		{name: "bad number", claims: map[string]any{"exp": json.Number("soon")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, claimExpiration(tt.claims))
		})
	}
}
