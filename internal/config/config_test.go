package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gomatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().CacheSize, cfg.CacheSize)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
port: "9090"
log_level: debug
log_format: text
cache_size: 16
max_pattern_length: 0
read_timeout: 5s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 0, cfg.MaxPatternLength)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultConfig().WriteTimeout, cfg.WriteTimeout)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeFile(t, "prot: 80\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("GOMATCH_PORT", "7070")
	t.Setenv("GOMATCH_CACHE_SIZE", "3")
	cfg, err := Load(writeFile(t, "port: \"9090\"\ncache_size: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 3, cfg.CacheSize)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GOMATCH_LOG_LEVEL":        "warn",
		"GOMATCH_MAX_INPUTS":       "5",
		"GOMATCH_SHUTDOWN_TIMEOUT": "1m",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Equal(t, 5, cfg.MaxInputs)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func TestApplyEnv_BadValues(t *testing.T) {
	env := map[string]string{
		"GOMATCH_CACHE_SIZE":   "many",
		"GOMATCH_READ_TIMEOUT": "soon",
	}
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Equal(t, DefaultConfig().CacheSize, cfg.CacheSize)
	assert.Equal(t, DefaultConfig().ReadTimeout, cfg.ReadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = "http" }},
		{"log_level", func(c *Config) { c.LogLevel = "loud" }},
		{"log_format", func(c *Config) { c.LogFormat = "xml" }},
		{"cache_size", func(c *Config) { c.CacheSize = 0 }},
		{"max_pattern_length", func(c *Config) { c.MaxPatternLength = -1 }},
		{"max_inputs", func(c *Config) { c.MaxInputs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestCompileOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPatternLength = 4
	opts := cfg.CompileOptions(nil)
	assert.Equal(t, 4, opts.MaxPatternLength)
	assert.Nil(t, opts.Logger)
}
