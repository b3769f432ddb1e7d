package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/thermostatd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"thermostatd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thermostatd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
duration = 5000
seed = 42
trace_dir = "/var/log/thermostatd"
log_level = "debug"
`)
	t.Setenv("THERMOSTATD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Duration, "Expected Duration 5000")
	assert.Equal(t, int64(42), cfg.Seed, "Expected Seed 42")
	assert.Equal(t, "/var/log/thermostatd", cfg.TraceDir, "Expected TraceDir /var/log/thermostatd")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
}

func TestLoadDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("THERMOSTATD_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 10000, cfg.Duration, "Expected default Duration 10000")
	assert.Equal(t, int64(0), cfg.Seed, "Expected default Seed 0")
	assert.Equal(t, ".", cfg.TraceDir, "Expected default TraceDir .")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
	assert.False(t, cfg.Debug, "Expected Debug false")
	assert.False(t, cfg.Verbose, "Expected Verbose false")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
This is not a valid TOML file
`)
	t.Setenv("THERMOSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read configuration")
}

func TestInvalidLogLevel(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
log_level = "invalid"
`)
	t.Setenv("THERMOSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}

func TestInvalidDuration(t *testing.T) {
	resetArgs(t)

	configPath := writeConfigFile(t, `
duration = -5
`)
	t.Setenv("THERMOSTATD_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid measurement duration")
}

func TestLogLevelFlag(t *testing.T) {
	resetArgs(t, "--log-level", "debug")
	t.Setenv("THERMOSTATD_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestFlagOverridesFile(t *testing.T) {
	resetArgs(t, "--duration", "2500")

	configPath := writeConfigFile(t, `
duration = 5000
`)
	t.Setenv("THERMOSTATD_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.Duration, "Expected flag to override file value")
}

func TestDebugFlagForcesDebugLevel(t *testing.T) {
	resetArgs(t, "--debug")
	t.Setenv("THERMOSTATD_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
}
