package crewmeister

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "plain string", body: "  upstream unavailable \n", want: "upstream unavailable"},
		{name: "message key", body: map[string]any{"message": "invalid credentials"}, want: "invalid credentials"},
		{name: "error key", body: map[string]any{"error": "forbidden"}, want: "forbidden"},
		{name: "error description", body: map[string]any{"error_description": "token expired"}, want: "token expired"},
		{name: "detail key", body: map[string]any{"detail": "not found"}, want: "not found"},
		{
			name: "message wins over detail",
			body: map[string]any{"detail": "secondary", "message": "primary"},
			want: "primary",
		},
		{
			name: "errors list of strings",
			body: map[string]any{"errors": []any{"first", " second "}},
			want: "first; second",
		},
		{
			name: "errors list of objects",
			body: map[string]any{"errors": []any{map[string]any{"message": "first"}, map[string]any{"message": "second"}}},
			want: "first; second",
		},
		{name: "error code fallback", body: map[string]any{"errorCode": "CM-401"}, want: "CM-401"},
		{name: "empty object", body: map[string]any{}, want: "API returned 502"},
		{name: "blank string", body: "   ", want: "API returned 502"},
		{name: "nil body", body: nil, want: "API returned 502"},
		{name: "unexpected shape", body: []any{"huh"}, want: "API returned 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractErrorMessage(tt.body, 502))
		})
	}
}
