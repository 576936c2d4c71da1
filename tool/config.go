package tool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xufanglin/rimmich/types"
)

const (
	MinConcurrency = 1
	MaxConcurrency = 16

	DefaultServerURL   = "http://localhost:2283"
	DefaultConcurrency = 5
	DefaultLanguage    = "en"
	DefaultLogLevel    = "info"
)

var (
	ConfigPath    = defaultConfigPath() // be aware that it can be changed, default to ~/.immich/config.yaml
	CurrentConfig types.AppConfig
	configMu      sync.RWMutex

	ErrInvalidConcurrency = fmt.Errorf("concurrency must be between %d and %d", MinConcurrency, MaxConcurrency)
	ErrInvalidLanguage    = errors.New("language must be one of: en, zh")
)

// ConfigDir returns the directory holding config and logs, ~/.immich by default.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".immich"
	}
	return filepath.Join(home, ".immich")
}

func defaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		CurrentUser: "",
		ServerURL:   DefaultServerURL,
		Concurrency: DefaultConcurrency,
		Language:    DefaultLanguage,
		LogLevel:    DefaultLogLevel,
		SpeedLimit:  0, // unlimited
		Users:       map[string]types.UserConfig{},
	}
}

// LoadConfig reads the config file at path, creating it with defaults when missing.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %w", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			setCurrentConfig(cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Users == nil {
		cfg.Users = map[string]types.UserConfig{}
	}
	// zero values mean the key is missing from an older file
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	DefaultLogger.Debugf("Loaded config from %s", path)
	setCurrentConfig(cfg)
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	// api keys live in this file
	return os.WriteFile(path, data, 0o600)
}

func setCurrentConfig(cfg types.AppConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	CurrentConfig = cloneConfig(cfg)
}

func cloneConfig(cfg types.AppConfig) types.AppConfig {
	users := make(map[string]types.UserConfig, len(cfg.Users))
	for k, v := range cfg.Users {
		users[k] = v
	}
	cfg.Users = users
	return cfg
}

// GetCurrentConfig returns a copy of the in-memory config.
func GetCurrentConfig() types.AppConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return cloneConfig(CurrentConfig)
}

// updateConfig applies fn to a copy of the current config and persists it; nothing changes when fn or the write fails.
func updateConfig(fn func(cfg *types.AppConfig) error) error {
	configMu.Lock()
	defer configMu.Unlock()
	cfg := cloneConfig(CurrentConfig)
	if err := fn(&cfg); err != nil {
		return err
	}
	if err := writeConfig(ConfigPath, cfg); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	CurrentConfig = cfg
	return nil
}

// ValidateConcurrency reports whether n is an accepted number of simultaneous uploads.
func ValidateConcurrency(n int) error {
	if n < MinConcurrency || n > MaxConcurrency {
		return fmt.Errorf("%w, got %d", ErrInvalidConcurrency, n)
	}
	return nil
}

func SetServerURL(serverURL string) error {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		return errors.New("server url must not be empty")
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.ServerURL = serverURL
		return nil
	})
}

func SetConcurrency(n int) error {
	if err := ValidateConcurrency(n); err != nil {
		return err
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.Concurrency = n
		return nil
	})
}

func SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang != "en" && lang != "zh" {
		return ErrInvalidLanguage
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.Language = lang
		return nil
	})
}

func SetLogLevelConfig(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if !validLogLevel(level) {
		return fmt.Errorf("unknown log level %q", level)
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.LogLevel = level
		return nil
	})
}

func SetSpeedLimit(bytesPerSecond int64) error {
	if bytesPerSecond < 0 {
		return errors.New("speed limit must not be negative")
	}
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.SpeedLimit = bytesPerSecond
		return nil
	})
}

func SetSkipTLSVerify(skip bool) error {
	return updateConfig(func(cfg *types.AppConfig) error {
		cfg.SkipTLSVerify = skip
		return nil
	})
}

// PatchConfig applies every non-nil field of patch in one write. Nothing is
// changed when any field is invalid.
func PatchConfig(patch types.ConfigPatchRequest) error {
	if patch.ServerURL != nil && strings.TrimSpace(*patch.ServerURL) == "" {
		return errors.New("server url must not be empty")
	}
	if patch.Concurrency != nil {
		if err := ValidateConcurrency(*patch.Concurrency); err != nil {
			return err
		}
	}
	var lang string
	if patch.Language != nil {
		lang = strings.ToLower(strings.TrimSpace(*patch.Language))
		if lang != "en" && lang != "zh" {
			return ErrInvalidLanguage
		}
	}
	var level string
	if patch.LogLevel != nil {
		level = strings.ToLower(strings.TrimSpace(*patch.LogLevel))
		if !validLogLevel(level) {
			return fmt.Errorf("unknown log level %q", level)
		}
	}
	if patch.SpeedLimit != nil && *patch.SpeedLimit < 0 {
		return errors.New("speed limit must not be negative")
	}

	return updateConfig(func(cfg *types.AppConfig) error {
		if patch.ServerURL != nil {
			cfg.ServerURL = strings.TrimSpace(*patch.ServerURL)
		}
		if patch.Concurrency != nil {
			cfg.Concurrency = *patch.Concurrency
		}
		if patch.Language != nil {
			cfg.Language = lang
		}
		if patch.LogLevel != nil {
			cfg.LogLevel = level
		}
		if patch.SpeedLimit != nil {
			cfg.SpeedLimit = *patch.SpeedLimit
		}
		if patch.SkipTLSVerify != nil {
			cfg.SkipTLSVerify = *patch.SkipTLSVerify
		}
		return nil
	})
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
