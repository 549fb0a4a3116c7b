// Package cli holds the dependencies shared by the bilishell commands.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/bilishell/internal/cli/styles"
	"github.com/bnema/bilishell/internal/domain/build"
	"github.com/bnema/bilishell/internal/infrastructure/config"
	"github.com/bnema/bilishell/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// LoadErr is the configuration error, if any. Config then holds the
	// defaults so read-only commands keep working.
	LoadErr error

	ctx context.Context
}

// NewApp loads the configuration and sets up a quiet stderr logger.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	return newApp(mgr), nil
}

func newApp(mgr *config.Manager) *App {
	loadErr := mgr.Load()
	cfg := mgr.Get()

	// Commands print their own output; the logger only surfaces problems
	// unless BILISHELL_LOG_LEVEL asks for more.
	logCfg := logging.DefaultConfig()
	logCfg.Level = zerolog.WarnLevel
	logCfg.TimeFormat = "15:04:05"
	logCfg = logging.ApplyEnv(logCfg)
	logger := logging.NewWithWriter(logCfg, os.Stderr)

	return &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		LoadErr: loadErr,
		ctx:     logging.WithContext(context.Background(), logger),
	}
}

// Ctx returns the base context carrying the CLI logger.
func (a *App) Ctx() context.Context {
	if a == nil || a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}
