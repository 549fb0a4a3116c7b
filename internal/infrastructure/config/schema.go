package config

import "time"

// Config represents the complete configuration for bilishell.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser" toml:"browser" json:"browser"`
	// Player controls what happens once a video or episode page has loaded.
	Player PlayerConfig `mapstructure:"player" yaml:"player" toml:"player" json:"player"`
}

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format LogFormat `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`

	// File output configuration. Only used while the terminal panel owns stdout.
	File       bool `mapstructure:"file" yaml:"file" toml:"file" json:"file" jsonschema:"default=true"`
	MaxSizeMB  int  `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// BrowserConfig controls how the Chromium surface is obtained.
type BrowserConfig struct {
	// ExecPath overrides the Chromium binary. Empty means auto-detect.
	ExecPath string `mapstructure:"exec_path" yaml:"exec_path" toml:"exec_path" json:"exec_path"`
	// RemoteURL attaches to a running browser (ws:// DevTools endpoint) instead of launching one.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url" toml:"remote_url" json:"remote_url"`
	Headless  bool   `mapstructure:"headless" yaml:"headless" toml:"headless" json:"headless"`
	// UserDataDir is the Chromium profile directory. Empty means the XDG data dir.
	UserDataDir  string `mapstructure:"user_data_dir" yaml:"user_data_dir" toml:"user_data_dir" json:"user_data_dir"`
	WindowWidth  int    `mapstructure:"window_width" yaml:"window_width" toml:"window_width" json:"window_width" jsonschema:"minimum=0"`
	WindowHeight int    `mapstructure:"window_height" yaml:"window_height" toml:"window_height" json:"window_height" jsonschema:"minimum=0"`
	AppMode      bool   `mapstructure:"app_mode" yaml:"app_mode" toml:"app_mode" json:"app_mode" jsonschema:"default=true"`
}

// PlayerConfig holds the auto-fullscreen timing.
type PlayerConfig struct {
	AutoFullscreen bool          `mapstructure:"auto_fullscreen" yaml:"auto_fullscreen" toml:"auto_fullscreen" json:"auto_fullscreen" jsonschema:"default=true"`
	InitialDelay   time.Duration `mapstructure:"initial_delay" yaml:"initial_delay" toml:"initial_delay" json:"initial_delay"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" yaml:"attempt_timeout" toml:"attempt_timeout" json:"attempt_timeout"`
	RetryDelay     time.Duration `mapstructure:"retry_delay" yaml:"retry_delay" toml:"retry_delay" json:"retry_delay"`
	// MaxRetries is capped at 1.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries" toml:"max_retries" json:"max_retries" jsonschema:"minimum=0,maximum=1,default=1"`
}
