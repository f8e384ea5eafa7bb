package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

type APIConfig struct {
	BaseURL string `validate:"required,http_url"`
}

type StorageConfig struct {
	DataDir string `validate:"required"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type UIConfig struct {
	NoColor bool
}

const DefaultBaseURL = "http://127.0.0.1:5000"

func defaults() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL},
		Storage: StorageConfig{DataDir: defaultDataDir()},
		Log:     LogConfig{Level: "info"},
	}
}

func defaultDataDir() string {
	return filepath.Join(xdg.DataHome, "compass")
}

// Load reads configuration from the platform-native backend and
// environment variables.
//
// On macOS the backend is UserDefaults (domain: com.techtonix.compass).
// Elsewhere it is a JSON file at $XDG_CONFIG_HOME/compass/config.json.
//
// Environment variables (COMPASS_*) override backend values on all platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, invalidConfig(err)
	}
	return cfg, nil
}

func invalidConfig(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q fails %s", keyForField(fe.StructNamespace()), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func keyForField(ns string) string {
	switch ns {
	case "Config.API.BaseURL":
		return "api.base_url"
	case "Config.Storage.DataDir":
		return "storage.data_dir"
	case "Config.Log.Level":
		return "log.level"
	}
	return ns
}

// SlogLevel maps the configured level onto slog. Unknown values are Info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
