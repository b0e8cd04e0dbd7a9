package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   Identity
	}{
		{
			name: "canonical claims",
			claims: map[string]any{
				"userId": float64(101),
				"crewId": float64(7),
				"email":  "jo@example.com",
				"name":   "Jo Example",
			},
			want: Identity{UserID: 101, CrewID: 7, Email: "jo@example.com", FullName: "Jo Example"},
		},
		{
			name: "snake case variants",
			claims: map[string]any{
				"user_id": "101",
				"crew_id": "7",
			},
			want: Identity{UserID: 101, CrewID: 7},
		},
		{
			name: "composite sub claim",
			claims: map[string]any{
				"sub":  "user:101",
				"crew": float64(7),
			},
			want: Identity{UserID: 101, CrewID: 7},
		},
		{
			name: "username stands in for email",
			claims: map[string]any{
				"username": "jo@example.com",
			},
			want: Identity{Email: "jo@example.com"},
		},
		{
			name: "non-numeric sub yields nothing",
			claims: map[string]any{
				"sub": "a7f3c9",
			},
			want: Identity{},
		},
		{
			name:   "empty claims",
			claims: map[string]any{},
			want:   Identity{},
		},
		{
			name:   "nil claims",
			claims: nil,
			want:   Identity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentityFromClaims(tt.claims))
		})
	}
}

func TestIdentityComplete(t *testing.T) {
	assert.True(t, Identity{UserID: 1, CrewID: 2}.Complete())
	assert.False(t, Identity{UserID: 1}.Complete())
	assert.False(t, Identity{CrewID: 2}.Complete())
	assert.False(t, Identity{Email: "jo@example.com"}.Complete())
}
