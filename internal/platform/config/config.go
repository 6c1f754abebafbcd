// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration.
const EnvPrefix = "QUOTES_"

// Environment variables read before configuration is loaded.
const (
	EnvProfile   = EnvPrefix + "PROFILE"
	EnvConfigDir = EnvPrefix + "CONFIG_DIR"
)

// Default configuration values.
const (
	// DefaultProfile is used when QUOTES_PROFILE is unset.
	DefaultProfile = "local"

	// DefaultStorePath is the quote file, relative to the home directory.
	DefaultStorePath = "~/.quotes/database.json"

	// DefaultEmphasisColor is ANSI bright yellow.
	DefaultEmphasisColor = "11"

	// DefaultHeaderColor is ANSI bright blue.
	DefaultHeaderColor = "12"

	// DefaultHealthTimeout bounds each health check.
	DefaultHealthTimeout = 2 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 10

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Store     StoreConfig     `koanf:"store"`
	Display   DisplayConfig   `koanf:"display"   validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Health    HealthConfig    `koanf:"health"    validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev test prod"`
}

// StoreConfig locates the quote book.
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Color         string `koanf:"color"          validate:"required,oneof=auto always never"`
	EmphasisColor string `koanf:"emphasis_color" validate:"required,numeric|hexcolor"`
	HeaderColor   string `koanf:"header_color"   validate:"required,numeric|hexcolor"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,hostname_port"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// HealthConfig contains health check settings.
type HealthConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"required,min=100ms"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotes",
		"app.version":     "dev",
		"app.environment": "local",

		"store.path": DefaultStorePath,

		"display.color":          "auto",
		"display.emphasis_color": DefaultEmphasisColor,
		"display.header_color":   DefaultHeaderColor,

		"log.level":            "warn",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "~/.quotes/logs/quotes.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotes",
		"telemetry.sampling_rate": 1.0,

		"health.timeout": DefaultHealthTimeout.String(),
	}
}

// Profile returns the active profile from QUOTES_PROFILE.
func Profile() string {
	if p := os.Getenv(EnvProfile); p != "" {
		return p
	}

	return DefaultProfile
}

// Dir returns the directory holding base.yaml and the profile files:
// QUOTES_CONFIG_DIR when set, otherwise ~/.quotes.
func Dir() string {
	if d := os.Getenv(EnvConfigDir); d != "" {
		return d
	}

	return ExpandHome("~/.quotes")
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (QUOTES_ prefix)
//  2. Profile config file ({dir}/{profile}.yaml)
//  3. Base config file ({dir}/base.yaml)
//  4. Default values
//
// Paths starting with ~ are expanded against the home directory.
func Load(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if dir != "" {
		if err := loadFileIfExists(k, filepath.Join(dir, "base.yaml")); err != nil {
			return nil, fmt.Errorf("loading base config: %w", err)
		}

		if profile != "" {
			path := filepath.Join(dir, profile+".yaml")
			if err := loadFileIfExists(k, path); err != nil {
				return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Store.Path = ExpandHome(cfg.Store.Path)
	cfg.Log.File.Path = ExpandHome(cfg.Log.File.Path)

	return &cfg, nil
}

// envKey maps QUOTES_LOG_FILE_MAX_SIZE to log.file.max_size by matching
// against the known keys, so underscores inside key names survive.
// Variables that match no key are ignored.
func envKey(keys []string) func(string) string {
	known := make(map[string]string, len(keys))
	for _, key := range keys {
		known[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}

	return func(s string) string {
		return known[strings.TrimPrefix(s, EnvPrefix)]
	}
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged when there is no ~ or no home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
