package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/bilishell/internal/infrastructure/config"
)

func TestNewApp_InvalidConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"shout\"\n"), 0o644))

	mgr, err := config.NewManagerAt(dir)
	require.NoError(t, err)

	app := newApp(mgr)
	require.Error(t, app.LoadErr)
	assert.Equal(t, config.DefaultConfig().Logging.Level, app.Config.Logging.Level)
	assert.NotNil(t, app.Theme)
	assert.NotNil(t, app.Ctx())
}

func TestNewApp_LoadsConfig(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()

	mgr, err := config.NewManagerAt(dir)
	require.NoError(t, err)

	app := newApp(mgr)
	require.NoError(t, app.LoadErr)
	assert.True(t, app.Config.Player.AutoFullscreen)
}

func TestApp_NilCtx(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Ctx())
}
