package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/crewtime-cli/internal/ports"
)

// CredentialKey is where the Crewmeister password for a username lives in
// the secret store.
func CredentialKey(username string) string {
	return "crewtime/" + strings.TrimSpace(username)
}

// ChainStore tries a primary store and falls back to a secondary one when
// the primary fails for any reason other than context cancellation.
type ChainStore struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*ChainStore)(nil)

func NewChainStore(primary, fallback ports.SecretStore) (*ChainStore, error) {
	if primary == nil {
		return nil, errors.New("primary secret store is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback secret store is nil")
	}
	return &ChainStore{primary: primary, fallback: fallback}, nil
}

// NewDefaultStore is the standard wiring: pass(1) first, plain files under
// fileRoot as the fallback.
func NewDefaultStore(fileRoot string) (*ChainStore, error) {
	return NewChainStore(NewPassStore(), NewFileStore(fileRoot))
}

func (s *ChainStore) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil || skipFallback(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary put failed: %w; fallback put failed: %w", err, fallbackErr)
	}
	return nil
}

func (s *ChainStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if skipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary get failed: %w; fallback get failed: %w", err, fallbackErr)
	}
	return fallbackValue, nil
}

func (s *ChainStore) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err == nil || skipFallback(err) {
		return err
	}

	if fallbackErr := s.fallback.Delete(ctx, key); fallbackErr != nil {
		return fmt.Errorf("primary delete failed: %w; fallback delete failed: %w", err, fallbackErr)
	}
	return nil
}

func skipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
