package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "quotes", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "/home/tester/.quotes/database.json", cfg.Store.Path)
	assert.Equal(t, "auto", cfg.Display.Color)
	assert.Equal(t, DefaultEmphasisColor, cfg.Display.EmphasisColor)
	assert.Equal(t, DefaultHeaderColor, cfg.Display.HeaderColor)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, DefaultHealthTimeout, cfg.Health.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_LogFileDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "/home/tester/.quotes/logs/quotes.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "quotes", cfg.Telemetry.ServiceName)
	assert.InDelta(t, 1.0, cfg.Telemetry.SamplingRate, 0)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("QUOTES_STORE_PATH", "/tmp/book.json")
	t.Setenv("QUOTES_LOG_LEVEL", "debug")
	t.Setenv("QUOTES_LOG_FILE_MAX_SIZE", "50")
	t.Setenv("QUOTES_DISPLAY_EMPHASIS_COLOR", "#ffcc00")
	t.Setenv("QUOTES_TELEMETRY_ENABLED", "true")
	t.Setenv("QUOTES_HEALTH_TIMEOUT", "750ms")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/book.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, "#ffcc00", cfg.Display.EmphasisColor)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 750*time.Millisecond, cfg.Health.Timeout)
}

func TestLoad_UnknownEnvVarsIgnored(t *testing.T) {
	t.Setenv(EnvProfile, "dev")
	t.Setenv("QUOTES_NOT_A_KEY", "x")

	_, err := Load("", "")
	require.NoError(t, err)
}

func TestLoad_FilePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", `
store:
  path: /data/base.json
display:
  color: never
log:
  level: info
`)
	writeYAML(t, dir, "dev.yaml", `
app:
  environment: dev
log:
  level: debug
`)
	t.Setenv("QUOTES_DISPLAY_COLOR", "always")

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)

	assert.Equal(t, "/data/base.json", cfg.Store.Path, "base file")
	assert.Equal(t, "debug", cfg.Log.Level, "profile beats base")
	assert.Equal(t, "dev", cfg.App.Environment)
	assert.Equal(t, "always", cfg.Display.Color, "env beats files")
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quotes", cfg.App.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "base.yaml", "store: [unclosed")

	_, err := Load(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestProfile(t *testing.T) {
	t.Setenv(EnvProfile, "")
	assert.Equal(t, DefaultProfile, Profile())

	t.Setenv(EnvProfile, "test")
	assert.Equal(t, "test", Profile())
}

func TestDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv(EnvConfigDir, "")
	assert.Equal(t, "/home/tester/.quotes", Dir())

	t.Setenv(EnvConfigDir, "/etc/quotes")
	assert.Equal(t, "/etc/quotes", Dir())
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/tester"},
		{"~/.quotes/database.json", "/home/tester/.quotes/database.json"},
		{"/abs/path.json", "/abs/path.json"},
		{"relative.json", "relative.json"},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "quotes", d["app.name"])
	assert.Equal(t, DefaultStorePath, d["store.path"])
	assert.Equal(t, "auto", d["display.color"])
	assert.Equal(t, "warn", d["log.level"])
	assert.Equal(t, "2s", d["health.timeout"])
}
