package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceUpdateIntervalSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "plain seconds", value: "90", want: 90},
		{name: "fractional seconds", value: "90.9", want: 90},
		{name: "whitespace tolerated", value: " 120 ", want: 120},
		{name: "mm:ss", value: "01:30", want: 90},
		{name: "hh:mm:ss", value: "00:02:30", want: 150},
		{name: "empty falls back to default", value: "", want: DefaultUpdateIntervalSeconds},
		{name: "garbage falls back to default", value: "soon", want: DefaultUpdateIntervalSeconds},
		{name: "partial garbage falls back", value: "1:xx", want: DefaultUpdateIntervalSeconds},
		{name: "too many segments", value: "1:2:3:4", want: DefaultUpdateIntervalSeconds},
		{name: "clamped to minimum", value: "5", want: MinUpdateIntervalSeconds},
		{name: "clamped to maximum", value: "86400", want: MaxUpdateIntervalSeconds},
		{name: "hh:mm:ss clamped", value: "02:00:00", want: MaxUpdateIntervalSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceUpdateIntervalSeconds(tt.value))
		})
	}
}

func TestResolveUpdateInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 90*time.Second, ResolveUpdateInterval("90"))
	assert.Equal(t, time.Duration(DefaultUpdateIntervalSeconds)*time.Second, ResolveUpdateInterval(""))
}
