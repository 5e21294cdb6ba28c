package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/artuross/funscript/internal/script/evaluate"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Flag names read by Read.
const (
	FlagConfig             = "config"
	FlagLogLevel           = "log-level"
	FlagMaxCallDepth       = "max-call-depth"
	FlagCatchRuntimeFaults = "catch-runtime-faults"
	FlagTrace              = "trace"
	FlagHistoryFile        = "history-file"
)

// Environment variables read by Read.
const (
	EnvConfig             = "FUNSCRIPT_CONFIG"
	EnvLogLevel           = "FUNSCRIPT_LOG_LEVEL"
	EnvMaxCallDepth       = "FUNSCRIPT_MAX_CALL_DEPTH"
	EnvCatchRuntimeFaults = "FUNSCRIPT_CATCH_RUNTIME_FAULTS"
	EnvTrace              = "FUNSCRIPT_TRACE"
	EnvHistoryFile        = "FUNSCRIPT_HISTORY_FILE"
)

var ErrInvalidConfig = errors.New("invalid config")

type Flagger interface {
	String(name string) string
	Int(name string) int
	Bool(name string) bool
	IsSet(name string) bool
}

type Config struct {
	LogLevel           string `yaml:"log_level"`
	MaxCallDepth       int    `yaml:"max_call_depth"`
	CatchRuntimeFaults bool   `yaml:"catch_runtime_faults"`
	Trace              bool   `yaml:"trace"`
	HistoryFile        string `yaml:"history_file"`
}

// Read builds the effective config. Later sources win: built-in defaults,
// then the YAML file, then environment variables, then flags.
func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	cfg := Config{
		LogLevel:     zerolog.WarnLevel.String(),
		MaxCallDepth: evaluate.DefaultMaxCallDepth,
	}

	// file
	path := flags.String(FlagConfig)
	if path == "" {
		path = getEnv(EnvConfig)
	}

	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// envs
	if value := getEnv(EnvLogLevel); value != "" {
		cfg.LogLevel = value
	}

	if value := getEnv(EnvMaxCallDepth); value != "" {
		depth, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: env var %s must be an integer: %q", ErrInvalidConfig, EnvMaxCallDepth, value)
		}

		cfg.MaxCallDepth = depth
	}

	if value := getEnv(EnvCatchRuntimeFaults); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: env var %s must be a boolean: %q", ErrInvalidConfig, EnvCatchRuntimeFaults, value)
		}

		cfg.CatchRuntimeFaults = enabled
	}

	if value := getEnv(EnvTrace); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: env var %s must be a boolean: %q", ErrInvalidConfig, EnvTrace, value)
		}

		cfg.Trace = enabled
	}

	if value := getEnv(EnvHistoryFile); value != "" {
		cfg.HistoryFile = value
	}

	// flags
	if flags.IsSet(FlagLogLevel) {
		cfg.LogLevel = flags.String(FlagLogLevel)
	}

	if flags.IsSet(FlagMaxCallDepth) {
		cfg.MaxCallDepth = flags.Int(FlagMaxCallDepth)
	}

	if flags.IsSet(FlagCatchRuntimeFaults) {
		cfg.CatchRuntimeFaults = flags.Bool(FlagCatchRuntimeFaults)
	}

	if flags.IsSet(FlagTrace) {
		cfg.Trace = flags.Bool(FlagTrace)
	}

	if flags.IsSet(FlagHistoryFile) {
		cfg.HistoryFile = flags.String(FlagHistoryFile)
	}

	// validation
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, cfg.LogLevel)
	}

	if cfg.MaxCallDepth <= 0 {
		return nil, fmt.Errorf("%w: max call depth must be positive, got %d", ErrInvalidConfig, cfg.MaxCallDepth)
	}

	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parse config file %s: %v", ErrInvalidConfig, path, err)
	}

	return nil
}

// Level returns the parsed log level. Read has already validated it.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}

	return level
}

func Print(w io.Writer, cfg *Config) {
	fmt.Fprintln(w, "Running with config:")
	fmt.Fprintf(w, "  Log Level: %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Max Call Depth: %d\n", cfg.MaxCallDepth)
	fmt.Fprintf(w, "  Catch Runtime Faults: %t\n", cfg.CatchRuntimeFaults)
	fmt.Fprintf(w, "  Trace: %t\n", cfg.Trace)
	fmt.Fprintf(w, "  History File: %s\n", cfg.HistoryFile)
}
