package config

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	API      apiSchema      `toml:"api"`
	Polling  pollingSchema  `toml:"polling"`
	Absences absencesSchema `toml:"absences"`
	Defaults stampDefSchema `toml:"stamp_defaults"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.API.BaseURL == "" {
		s.API.BaseURL = DefaultBaseURL
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

type apiSchema struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Language string `toml:"language,omitempty"`
}

type pollingSchema struct {
	// UpdateInterval accepts plain seconds or HH:MM / HH:MM:SS strings.
	UpdateInterval string `toml:"update_interval,omitempty"`
}

type absencesSchema struct {
	States []string `toml:"states,omitempty"`
}

type stampDefSchema struct {
	Note          string `toml:"note,omitempty"`
	TimeAccountID int64  `toml:"time_account_id,omitempty"`
}
