package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/crewtime-cli/internal/adapters/config"
	"github.com/bnema/crewtime-cli/internal/adapters/crewmeister"
	"github.com/bnema/crewtime-cli/internal/adapters/secrets"
	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/bnema/crewtime-cli/internal/ports"
)

var errNotConfigured = errors.New("no account configured, run 'ct login' first")

type app struct {
	settings      config.Settings
	settingsStore *config.Store
	secretStore   ports.SecretStore
	httpClient    *http.Client
	logger        *slog.Logger
	now           func() time.Time
}

func wireApp() (*app, error) {
	settingsStore, err := config.NewStore(nil)
	if err != nil {
		return nil, fmt.Errorf("wire settings store: %w", err)
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := secrets.NewDefaultStore(filepath.Join(homeDir, ".crewtime", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		settings:      settings,
		settingsStore: settingsStore,
		secretStore:   secretStore,
		httpClient:    http.DefaultClient,
		logger:        newLogger(),
		now:           time.Now,
	}, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("CREWTIME_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// client builds the session client for the configured account.
func (a *app) client(ctx context.Context) (*crewmeister.Client, error) {
	if a.settings.Username == "" {
		return nil, errNotConfigured
	}

	password, err := a.secretStore.Get(ctx, secrets.CredentialKey(a.settings.Username))
	if err != nil {
		return nil, fmt.Errorf("load stored password: %w", err)
	}

	client, err := crewmeister.New(crewmeister.Config{
		BaseURL:    a.settings.BaseURL,
		Username:   a.settings.Username,
		Password:   password,
		Language:   a.settings.Language,
		HTTPClient: a.httpClient,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build crewmeister client: %w", err)
	}
	return client, nil
}

// tracker builds the application service for the configured account.
func (a *app) tracker(ctx context.Context) (*application.Service, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	return application.NewService(client, application.ServiceConfig{
		Defaults: application.StampDefaults{
			Note:          a.settings.StampNote,
			TimeAccountID: a.settings.StampTimeAccountID,
		},
		AbsenceStates: a.settings.AbsenceStates,
	}), nil
}
