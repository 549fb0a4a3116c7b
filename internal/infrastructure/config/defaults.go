package config

import (
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/infrastructure/chromium"
)

const (
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	browser := chromium.DefaultOptions()
	player := entity.DefaultAutoFullscreenPolicy()

	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     LogFormatConsole,
			File:       true,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Browser: BrowserConfig{
			WindowWidth:  browser.WindowWidth,
			WindowHeight: browser.WindowHeight,
			AppMode:      browser.AppMode,
		},
		Player: PlayerConfig{
			AutoFullscreen: player.Enabled,
			InitialDelay:   player.InitialDelay,
			AttemptTimeout: player.AttemptTimeout,
			RetryDelay:     player.RetryDelay,
			MaxRetries:     player.MaxRetries,
		},
	}
}

// setDefaults registers every key with viper so env overrides and
// SafeWriteConfigAs see the full tree.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", string(d.Logging.Format))
	m.viper.SetDefault("logging.file", d.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)

	m.viper.SetDefault("browser.exec_path", d.Browser.ExecPath)
	m.viper.SetDefault("browser.remote_url", d.Browser.RemoteURL)
	m.viper.SetDefault("browser.headless", d.Browser.Headless)
	m.viper.SetDefault("browser.user_data_dir", d.Browser.UserDataDir)
	m.viper.SetDefault("browser.window_width", d.Browser.WindowWidth)
	m.viper.SetDefault("browser.window_height", d.Browser.WindowHeight)
	m.viper.SetDefault("browser.app_mode", d.Browser.AppMode)

	m.viper.SetDefault("player.auto_fullscreen", d.Player.AutoFullscreen)
	m.viper.SetDefault("player.initial_delay", d.Player.InitialDelay.String())
	m.viper.SetDefault("player.attempt_timeout", d.Player.AttemptTimeout.String())
	m.viper.SetDefault("player.retry_delay", d.Player.RetryDelay.String())
	m.viper.SetDefault("player.max_retries", d.Player.MaxRetries)
}

// ChromiumOptions converts the browser section into surface options.
func (c *Config) ChromiumOptions() chromium.Options {
	return chromium.Options{
		ExecPath:     c.Browser.ExecPath,
		RemoteURL:    c.Browser.RemoteURL,
		Headless:     c.Browser.Headless,
		UserDataDir:  c.Browser.UserDataDir,
		WindowWidth:  c.Browser.WindowWidth,
		WindowHeight: c.Browser.WindowHeight,
		AppMode:      c.Browser.AppMode,
	}
}

// FullscreenPolicy converts the player section into the auto-fullscreen policy.
func (c *Config) FullscreenPolicy() entity.AutoFullscreenPolicy {
	return entity.AutoFullscreenPolicy{
		Enabled:        c.Player.AutoFullscreen,
		InitialDelay:   c.Player.InitialDelay,
		AttemptTimeout: c.Player.AttemptTimeout,
		RetryDelay:     c.Player.RetryDelay,
		MaxRetries:     c.Player.MaxRetries,
	}.Normalized()
}
