package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "https://api.crewmeister.com"

	configName      = "config"
	configType      = "toml"
	configDirName   = ".crewtime"
	configFileName  = "config.toml"
	configPathKey   = "config.path"
	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

// Settings are the resolved user options for one Crewmeister account.
type Settings struct {
	BaseURL            string
	Username           string
	Language           string
	UpdateInterval     time.Duration
	AbsenceStates      []string
	StampNote          string
	StampTimeAccountID int64
}

// Store reads and persists settings in a TOML file under the user's home
// directory. Writes are atomic; concurrent access to the same path shares
// one lock.
type Store struct {
	configPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, configFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(configPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	configPath := cfg.GetString(configPathKey)
	if configPath == "" {
		return nil, errors.New("config path is empty")
	}
	configPath, err = normalizeConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	return &Store{configPath: configPath, mu: lockForPath(configPath)}, nil
}

// Load returns the stored settings with defaults and interval clamping
// applied. A missing file yields pure defaults.
func (s *Store) Load() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		BaseURL:            file.API.BaseURL,
		Username:           file.API.Username,
		Language:           file.API.Language,
		UpdateInterval:     ResolveUpdateInterval(file.Polling.UpdateInterval),
		AbsenceStates:      file.Absences.States,
		StampNote:          file.Defaults.Note,
		StampTimeAccountID: file.Defaults.TimeAccountID,
	}, nil
}

// Save persists the settings, replacing the stored file atomically.
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := fileSchema{
		Version: currentSchemaVersion,
		API: apiSchema{
			BaseURL:  settings.BaseURL,
			Username: settings.Username,
			Language: settings.Language,
		},
		Absences: absencesSchema{States: settings.AbsenceStates},
		Defaults: stampDefSchema{
			Note:          settings.StampNote,
			TimeAccountID: settings.StampTimeAccountID,
		},
	}
	if settings.UpdateInterval > 0 {
		seconds := clampIntervalSeconds(int(settings.UpdateInterval / time.Second))
		file.Polling.UpdateInterval = strconv.Itoa(seconds)
	}
	file.applyDefaults()

	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.configPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, s.configPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(s.configPath, configFileMode); err != nil {
		return fmt.Errorf("chmod config file: %w", err)
	}

	return nil
}

func normalizeConfigPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
