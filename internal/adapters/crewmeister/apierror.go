package crewmeister

import (
	"fmt"
	"strings"
)

// extractErrorMessage pulls a human-readable detail out of whatever shape
// the API put in an error body. The vendor is inconsistent across
// endpoints, so the checks run in a fixed precedence order.
func extractErrorMessage(body any, status int) string {
	switch v := body.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	case map[string]any:
		for _, key := range []string{"message", "error", "error_description", "detail", "title", "reason"} {
			if text, ok := v[key].(string); ok && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
		if joined := joinErrorList(v["errors"]); joined != "" {
			return joined
		}
		if code, ok := v["errorCode"].(string); ok && strings.TrimSpace(code) != "" {
			return strings.TrimSpace(code)
		}
	}
	return fmt.Sprintf("API returned %d", status)
}

func joinErrorList(value any) string {
	items, ok := value.([]any)
	if !ok {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				parts = append(parts, trimmed)
			}
		case map[string]any:
			if text, ok := entry["message"].(string); ok && strings.TrimSpace(text) != "" {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
	}
	return strings.Join(parts, "; ")
}
