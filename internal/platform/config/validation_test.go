package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "quotes",
			Version:     "1.0.0",
			Environment: "local",
		},
		Store: StoreConfig{Path: "/tmp/database.json"},
		Display: DisplayConfig{
			Color:         "auto",
			EmphasisColor: "11",
			HeaderColor:   "#3366ff",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "pretty",
		},
		Health: HealthConfig{Timeout: time.Second},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains []string
	}{
		{
			name:     "missing app name",
			mutate:   func(c *Config) { c.App.Name = "" },
			contains: []string{"app.name is required"},
		},
		{
			name:     "invalid environment",
			mutate:   func(c *Config) { c.App.Environment = "staging" },
			contains: []string{"app.environment", "must be one of"},
		},
		{
			name:     "missing store path",
			mutate:   func(c *Config) { c.Store.Path = "" },
			contains: []string{"store.path is required"},
		},
		{
			name:     "invalid color mode",
			mutate:   func(c *Config) { c.Display.Color = "sometimes" },
			contains: []string{"display.color must be one of: auto always never"},
		},
		{
			name:     "invalid emphasis color",
			mutate:   func(c *Config) { c.Display.EmphasisColor = "yellow" },
			contains: []string{"display.emphasis_color"},
		},
		{
			name:     "invalid header color",
			mutate:   func(c *Config) { c.Display.HeaderColor = "#zzz" },
			contains: []string{"display.header_color"},
		},
		{
			name:     "invalid log level",
			mutate:   func(c *Config) { c.Log.Level = "verbose" },
			contains: []string{"log.level", "must be one of"},
		},
		{
			name:     "invalid log format",
			mutate:   func(c *Config) { c.Log.Format = "xml" },
			contains: []string{"log.format"},
		},
		{
			name: "log file enabled without path",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = ""
			},
			contains: []string{"log.file.path is required when Enabled true"},
		},
		{
			name: "log file size too large",
			mutate: func(c *Config) {
				c.Log.File = LogFileConfig{Enabled: true, Path: "x.log", MaxSizeMB: 2048}
			},
			contains: []string{"log.file.max_size must be at most 1024"},
		},
		{
			name: "telemetry enabled without endpoint",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "quotes"}
			},
			contains: []string{"telemetry.endpoint is required"},
		},
		{
			name: "telemetry endpoint not host:port",
			mutate: func(c *Config) {
				c.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "http://collector", ServiceName: "quotes"}
			},
			contains: []string{"telemetry.endpoint must be host:port"},
		},
		{
			name:     "sampling rate out of range",
			mutate:   func(c *Config) { c.Telemetry.SamplingRate = 1.5 },
			contains: []string{"telemetry.sampling_rate must be at most 1"},
		},
		{
			name:     "health timeout too short",
			mutate:   func(c *Config) { c.Health.Timeout = time.Millisecond },
			contains: []string{"health.timeout must be at least"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestConfig_Validate_AcceptedValues(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Log.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	for _, mode := range []string{"auto", "always", "never"} {
		cfg := validConfig()
		cfg.Display.Color = mode
		assert.NoError(t, cfg.Validate(), mode)
	}

	cfg := validConfig()
	cfg.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "localhost:4317", ServiceName: "quotes", SamplingRate: 0.5}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Store.Path = ""

	err := cfg.Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "config validation failed")
	assert.Contains(t, err.Error(), "app.name")
	assert.Contains(t, err.Error(), "store.path")
	assert.NotContains(t, err.Error(), "store is required", "an empty store section reports its field")
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Config.log.file.path", "log.file.path"},
		{"Config.display.emphasis_color", "display.emphasis_color"},
		{"Config", "config"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFieldPath(tt.input))
		})
	}
}
