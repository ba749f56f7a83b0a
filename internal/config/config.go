package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"GoMatch/internal/automaton"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GOMATCH_"

// Config configures the gomatch service and CLI.
type Config struct {
	// Port is the HTTP listen port.
	Port string `yaml:"port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text.
	LogFormat string `yaml:"log_format"`

	// CacheSize is the number of compiled patterns kept by the server.
	CacheSize int `yaml:"cache_size"`

	// MaxPatternLength bounds accepted patterns, in bytes. Zero disables it.
	MaxPatternLength int `yaml:"max_pattern_length"`

	// MaxInputs bounds the inputs accepted by a single match request.
	MaxInputs int `yaml:"max_inputs"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:             "8080",
		LogLevel:         "info",
		LogFormat:        "json",
		CacheSize:        1024,
		MaxPatternLength: automaton.DefaultMaxPatternLength,
		MaxInputs:        1000,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     60 * time.Second,
		IdleTimeout:      120 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Load builds a Config from defaults, the YAML file at path (if non-empty)
// and GOMATCH_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config")
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with
// getenv. Unset or empty variables leave the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	for key, dst := range map[string]*string{
		"PORT":       &c.Port,
		"LOG_LEVEL":  &c.LogLevel,
		"LOG_FORMAT": &c.LogFormat,
	} {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	var errs error
	for key, dst := range map[string]*int{
		"CACHE_SIZE":         &c.CacheSize,
		"MAX_PATTERN_LENGTH": &c.MaxPatternLength,
		"MAX_INPUTS":         &c.MaxInputs,
	} {
		v := getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "%s%s", EnvPrefix, key))
			continue
		}
		*dst = n
	}
	for key, dst := range map[string]*time.Duration{
		"READ_TIMEOUT":     &c.ReadTimeout,
		"WRITE_TIMEOUT":    &c.WriteTimeout,
		"IDLE_TIMEOUT":     &c.IdleTimeout,
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
	} {
		v := getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "%s%s", EnvPrefix, key))
			continue
		}
		*dst = d
	}
	return errs
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return errors.Newf("config: invalid port %q", c.Port)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.Newf("config: invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.Newf("config: invalid log_format %q", c.LogFormat)
	}
	if c.CacheSize <= 0 {
		return errors.Newf("config: cache_size must be positive, got %d", c.CacheSize)
	}
	if c.MaxPatternLength < 0 {
		return errors.Newf("config: max_pattern_length must not be negative, got %d", c.MaxPatternLength)
	}
	if c.MaxInputs <= 0 {
		return errors.Newf("config: max_inputs must be positive, got %d", c.MaxInputs)
	}
	return nil
}

// CompileOptions returns the automaton options implied by c.
func (c *Config) CompileOptions(logger *slog.Logger) automaton.Options {
	return automaton.Options{
		MaxPatternLength: c.MaxPatternLength,
		Logger:           logger,
	}
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
