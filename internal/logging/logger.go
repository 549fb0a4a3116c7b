package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables read by NewFromEnv.
const (
	EnvLevel  = "BILISHELL_LOG_LEVEL"
	EnvFormat = "BILISHELL_LOG_FORMAT"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// SessionID is attached to every entry when set.
	SessionID string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a config string to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New creates a zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a zerolog logger writing to w.
// Console format on a file disables colors.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	output := w
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: cfg.TimeFormat,
			NoColor:    w != os.Stderr,
		}
	}

	ctx := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp()
	if cfg.SessionID != "" {
		ctx = ctx.Str("session", cfg.SessionID)
	}
	return ctx.Logger()
}

// NewFromEnv creates a logger based on environment variables
// BILISHELL_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// BILISHELL_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return New(ApplyEnv(DefaultConfig()))
}

// ApplyEnv overrides cfg with BILISHELL_LOG_* variables when they are valid.
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv(EnvLevel); level != "" {
		if parsed, err := ParseLevel(level); err == nil {
			cfg.Level = parsed
		}
	}

	if format := os.Getenv(EnvFormat); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}
	return cfg
}

// GenerateSessionID creates a unique identifier for one shell run.
// Format: YYYYMMDD_HHMMSS_xxxx
func GenerateSessionID() string {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return time.Now().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// NewReloadable creates a logger whose threshold follows SetLevel instead
// of being fixed at construction.
func NewReloadable(cfg Config, w io.Writer) zerolog.Logger {
	SetLevel(cfg.Level)
	cfg.Level = zerolog.TraceLevel
	return NewWithWriter(cfg, w)
}

// SetLevel changes the threshold of loggers built with NewReloadable.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
