package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/cli/model"
	"github.com/bnema/bilishell/internal/cli/styles"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/bnema/bilishell/internal/infrastructure/chromium"
	"github.com/bnema/bilishell/internal/infrastructure/config"
	"github.com/bnema/bilishell/internal/infrastructure/profilelock"
	"github.com/bnema/bilishell/internal/infrastructure/scriptcheck"
	"github.com/bnema/bilishell/internal/logging"
)

const logFileName = "bilishell.log"

// errPanelQuit ends the run group when the user leaves the control panel.
var errPanelQuit = errors.New("control panel closed")

// ShellOptions configures one browse session.
type ShellOptions struct {
	Config *config.Config
	// Manager enables hot reload of the log level and player policy when set.
	Manager  *config.Manager
	StartURL string
	// NoPanel runs without the terminal control panel; logs go to stderr.
	NoPanel bool
}

// RunShell launches or attaches to the browser, opens the start URL and
// blocks until the panel quits, the browser window closes or ctx ends.
func RunShell(ctx context.Context, opts ShellOptions) error {
	timer := NewStartupTimer()
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	site := entity.BilibiliProfile()
	start, err := url.ResolveStartURL(site, opts.StartURL)
	if err != nil {
		return err
	}

	logger, closeLog, err := newShellLogger(cfg, !opts.NoPanel)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = logging.WithContext(ctx, logger)
	log := logging.FromContext(ctx)
	log.Info().Str("start", logging.TruncateURL(start)).Bool("panel", !opts.NoPanel).Msg("starting shell")
	timer.Mark("logger")

	CheckScripts(ctx, scriptcheck.NewChecker(0), site.Scripts)
	timer.Mark("scripts")

	browserOpts := cfg.ChromiumOptions()
	if !browserOpts.Remote() && browserOpts.UserDataDir != "" {
		lock, lockErr := profilelock.Acquire(browserOpts.UserDataDir)
		if lockErr != nil {
			return fmt.Errorf("lock chromium profile: %w", lockErr)
		}
		defer func() { _ = lock.Release() }()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shell := NewShell(ctx, site, cfg.FullscreenPolicy())

	surface := chromium.New(logging.WithComponent(ctx, "chromium"), browserOpts)
	if err := surface.Start(ctx); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer surface.Close()
	timer.Mark("browser")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return shell.Loop.Run(gctx)
	})

	var program *tea.Program
	if !opts.NoPanel {
		send := func(msg tea.Msg) { program.Send(msg) }
		panel := model.NewShellModel(styles.NewTheme(), shell.Controller(gctx, send))
		program = tea.NewProgram(panel, tea.WithContext(gctx), tea.WithAltScreen())
		shell.Publish(send)

		g.Go(func() error {
			if _, runErr := program.Run(); runErr != nil {
				return runErr
			}
			return errPanelQuit
		})
	}

	g.Go(func() error {
		waitErr := surface.Wait(gctx)
		if program != nil && errors.Is(waitErr, chromium.ErrClosed) {
			program.Send(model.SurfaceClosedMsg{})
		}
		return waitErr
	})

	if opts.Manager != nil {
		watchConfig(ctx, opts.Manager, shell)
	}

	shell.Open(gctx, surface, start)
	timer.Mark("open")
	timer.Log(ctx)

	err = g.Wait()
	shell.Loop.Stop()
	// The loop is gone; nothing else touches the shell now.
	shell.Close(ctx)
	if isCleanExit(err) {
		log.Info().Msg("shell stopped")
		return nil
	}
	return err
}

func isCleanExit(err error) bool {
	return err == nil ||
		errors.Is(err, errPanelQuit) ||
		errors.Is(err, chromium.ErrClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, tea.ErrProgramKilled)
}

// newShellLogger logs to a rotated file while the panel owns the terminal,
// and to stderr otherwise.
func newShellLogger(cfg *config.Config, panel bool) (zerolog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	logCfg := logging.Config{
		Level:      level,
		Format:     string(cfg.Logging.Format),
		TimeFormat: "15:04:05",
		SessionID:  logging.GenerateSessionID(),
	}

	if !panel {
		return logging.NewReloadable(logCfg, os.Stderr), func() {}, nil
	}
	if !cfg.Logging.File {
		return logging.NewReloadable(logCfg, io.Discard), func() {}, nil
	}

	dir, err := config.GetLogDir()
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("resolve log dir: %w", err)
	}
	rotator, err := logging.NewLogRotator(dir, logFileName, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return logging.NewReloadable(logCfg, rotator), func() { _ = rotator.Close() }, nil
}

// LogFilePath is where the panel session writes its log.
func LogFilePath() (string, error) {
	dir, err := config.GetLogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// watchConfig applies reloaded log levels and player policies.
func watchConfig(ctx context.Context, mgr *config.Manager, shell *Shell) {
	log := logging.FromContext(ctx)

	mgr.OnConfigChange(func(c *config.Config) {
		if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
			logging.SetLevel(level)
		}
		policy := c.FullscreenPolicy()
		shell.Loop.Post(func() {
			shell.Fullscreen.SetPolicy(policy)
			log.Info().
				Str("level", c.Logging.Level).
				Bool("auto_fullscreen", policy.Enabled).
				Msg("configuration reloaded")
		})
	})
	if err := mgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config hot reload unavailable")
	}
}

// CheckScripts parses every player script and logs syntax errors. The
// affordances stay wired either way.
func CheckScripts(ctx context.Context, checker port.ScriptValidator, scripts entity.PlayerScripts) bool {
	log := logging.FromContext(ctx)
	ok := true
	for _, s := range scriptcheck.Named(scripts) {
		if err := checker.Validate(s.Name, s.Source); err != nil {
			log.Error().Err(err).Str("script", s.Name).Msg("player script does not parse")
			ok = false
		}
	}
	return ok
}
