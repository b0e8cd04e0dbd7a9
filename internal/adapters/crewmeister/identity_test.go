package crewmeister

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/crewtime-cli/internal/domain"
)

func TestIdentityFromConstructorSkipsResolution(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, func(cfg *Config) {
		cfg.Identity = &domain.Identity{UserID: 101, CrewID: 7}
	})

	identity, err := client.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), identity.UserID)
	assert.Equal(t, int64(7), identity.CrewID)
	assert.Zero(t, requests.Load())
}

func TestIdentityResolvedFromClaims(t *testing.T) {
	t.Parallel()

	var stampCalls atomic.Int32
	exp := time.Now().Add(2 * time.Hour).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case authPath:
			token := signedToken(t, map[string]any{
				"userId": float64(101),
				"crewId": float64(7),
				"email":  "jo@example.com",
				"exp":    float64(exp),
			})
			_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
		case stampsPath:
			stampCalls.Add(1)
			_, _ = w.Write([]byte(`{"content":[]}`))
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	identity, err := client.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: 101, CrewID: 7, Email: "jo@example.com"}, identity)
	assert.Zero(t, stampCalls.Load(), "complete claims need no stamp lookup")
}

func TestIdentityGapFilledFromLatestStamp(t *testing.T) {
	t.Parallel()

	var stampCalls atomic.Int32
	exp := time.Now().Add(2 * time.Hour).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case authPath:
			// No crew claim in this token revision.
			token := signedToken(t, map[string]any{"userId": float64(101), "exp": float64(exp)})
			_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
		case stampsPath:
			stampCalls.Add(1)
			_, _ = w.Write([]byte(`{"content":[{"id":42,"userId":101,"crewId":7}]}`))
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	ctx := context.Background()

	identity, err := client.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(101), identity.UserID)
	assert.Equal(t, int64(7), identity.CrewID)
	assert.Equal(t, int32(1), stampCalls.Load())

	// Second call is served from the session cache.
	_, err = client.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), stampCalls.Load())
}

func TestIdentityUnresolvable(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case authPath:
			token := signedToken(t, map[string]any{"exp": float64(exp)})
			_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
		case stampsPath:
			_, _ = w.Write([]byte(`{"content":[]}`))
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	_, err := client.Identity(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
}
