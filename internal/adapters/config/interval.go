package config

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultUpdateIntervalSeconds = 60
	MinUpdateIntervalSeconds     = 15
	MaxUpdateIntervalSeconds     = 3600
)

// CoerceUpdateIntervalSeconds clamps a polling interval to the supported
// range. The value may be plain seconds or a MM:SS / HH:MM:SS string;
// anything unparseable falls back to the default.
func CoerceUpdateIntervalSeconds(value string) int {
	seconds := DefaultUpdateIntervalSeconds

	stripped := strings.TrimSpace(value)
	if stripped != "" {
		if parsed, err := strconv.ParseFloat(stripped, 64); err == nil {
			seconds = int(parsed)
		} else if parsed, ok := parseColonTime(stripped); ok {
			seconds = parsed
		}
	}

	return clampIntervalSeconds(seconds)
}

// ResolveUpdateInterval returns a sanitized polling interval.
func ResolveUpdateInterval(value string) time.Duration {
	return time.Duration(CoerceUpdateIntervalSeconds(value)) * time.Second
}

func clampIntervalSeconds(seconds int) int {
	return max(MinUpdateIntervalSeconds, min(MaxUpdateIntervalSeconds, seconds))
}

// parseColonTime parses MM:SS and HH:MM:SS strings into seconds.
func parseColonTime(value string) (int, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}

	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, false
		}
		numbers = append(numbers, int(parsed))
	}

	if len(numbers) == 2 {
		return numbers[0]*60 + numbers[1], true
	}
	return numbers[0]*3600 + numbers[1]*60 + numbers[2], true
}
