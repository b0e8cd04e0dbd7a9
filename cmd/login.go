package cmd

import (
	"fmt"

	"github.com/bnema/crewtime-cli/internal/adapters/config"
	"github.com/bnema/crewtime-cli/internal/adapters/crewmeister"
	"github.com/bnema/crewtime-cli/internal/adapters/secrets"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		username     string
		password     string
		baseURL      string
		language     string
		interval     string
		stampNote    string
		timeAccount  int64
		absenceState []string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials and verify them against the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := app.settings
			settings.Username = username
			if baseURL != "" {
				settings.BaseURL = baseURL
			}
			if settings.BaseURL == "" {
				settings.BaseURL = config.DefaultBaseURL
			}
			if language != "" {
				settings.Language = language
			}
			if interval != "" {
				settings.UpdateInterval = config.ResolveUpdateInterval(interval)
			}
			if stampNote != "" {
				settings.StampNote = stampNote
			}
			if timeAccount > 0 {
				settings.StampTimeAccountID = timeAccount
			}
			if len(absenceState) > 0 {
				settings.AbsenceStates = absenceState
			}

			client, err := crewmeister.New(crewmeister.Config{
				BaseURL:    settings.BaseURL,
				Username:   settings.Username,
				Password:   password,
				Language:   settings.Language,
				HTTPClient: app.httpClient,
				Logger:     app.logger,
			})
			if err != nil {
				return fmt.Errorf("build crewmeister client: %w", err)
			}
			if err := client.Login(cmd.Context()); err != nil {
				return err
			}
			identity, err := client.Identity(cmd.Context())
			if err != nil {
				return err
			}

			key := secrets.CredentialKey(settings.Username)
			if err := app.secretStore.Put(cmd.Context(), key, password); err != nil {
				return fmt.Errorf("store password: %w", err)
			}
			if err := app.settingsStore.Save(settings); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			app.settings = settings

			name := identity.FullName
			if name == "" {
				name = identity.Email
			}
			if name == "" {
				name = settings.Username
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (user %d, crew %d)\n",
				name, identity.UserID, identity.CrewID)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Crewmeister account username (email)")
	cmd.Flags().StringVar(&password, "password", "", "Crewmeister account password")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (default "+config.DefaultBaseURL+")")
	cmd.Flags().StringVar(&language, "language", "", "Preferred language tag for API responses, e.g. de-DE")
	cmd.Flags().StringVar(&interval, "update-interval", "", "Polling interval for watch mode (seconds or HH:MM:SS)")
	cmd.Flags().StringVar(&stampNote, "stamp-note", "", "Default note attached to quick stamps")
	cmd.Flags().Int64Var(&timeAccount, "time-account", 0, "Default time account id for quick stamps")
	cmd.Flags().StringSliceVar(&absenceState, "absence-states", nil, "Absence approval states to show")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
