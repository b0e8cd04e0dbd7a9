package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuth                 = errors.New("authentication with crewmeister failed")
	ErrConnection           = errors.New("cannot reach crewmeister api")
	ErrMissingIdentity      = errors.New("unable to determine crewmeister user identity")
	ErrUnsupportedStampType = errors.New("unsupported stamp type")
	ErrInvalidTransition    = errors.New("invalid stamp transition")
)

// APIError carries the detail message extracted from a non-2xx API response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crewmeister api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("crewmeister api returned %d: %s", e.StatusCode, e.Message)
}
