package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedPassStore(run passRunFunc) *PassStore {
	return &PassStore{run: run}
}

func TestPassStorePut(t *testing.T) {
	t.Parallel()

	var gotInput string
	var gotArgs []string
	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		gotInput = input
		gotArgs = args
		return "", "", nil
	})

	require.NoError(t, store.Put(context.Background(), "crewtime/jo", "hunter2"))
	assert.Equal(t, "hunter2\n", gotInput)
	assert.Equal(t, []string{"insert", "-m", "-f", "crewtime/jo"}, gotArgs)
}

func TestPassStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"show", "crewtime/jo"}, args)
		return "hunter2\n", "", nil
	})

	value, err := store.Get(context.Background(), "crewtime/jo")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
}

func TestPassStoreDelete(t *testing.T) {
	t.Parallel()

	var gotArgs []string
	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		gotArgs = args
		return "", "", nil
	})

	require.NoError(t, store.Delete(context.Background(), "crewtime/jo"))
	assert.Equal(t, []string{"rm", "-f", "crewtime/jo"}, gotArgs)
}

func TestPassStoreSurfacesStderr(t *testing.T) {
	t.Parallel()

	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		return "", "gpg: decryption failed", errors.New("exit status 2")
	})

	_, err := store.Get(context.Background(), "crewtime/jo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpg: decryption failed")
}

func TestPassStorePropagatesUnavailable(t *testing.T) {
	t.Parallel()

	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		return "", "", ErrPassUnavailable
	})

	_, err := store.Get(context.Background(), "crewtime/jo")
	assert.ErrorIs(t, err, ErrPassUnavailable)
}

func TestPassStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	called := false
	store := scriptedPassStore(func(ctx context.Context, input string, args ...string) (string, string, error) {
		called = true
		return "", "", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "crewtime/jo", "x"), context.Canceled)
	assert.False(t, called)
}
