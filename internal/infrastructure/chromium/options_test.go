package chromium

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "defaults", opts: DefaultOptions()},
		{name: "remote websocket", opts: Options{RemoteURL: "ws://127.0.0.1:9222/devtools/browser/abc"}},
		{name: "remote http endpoint", opts: Options{RemoteURL: "http://127.0.0.1:9222"}},
		{name: "remote bad scheme", opts: Options{RemoteURL: "ftp://host"}, wantErr: "unsupported scheme"},
		{name: "negative size", opts: Options{WindowWidth: -1}, wantErr: "negative"},
		{name: "app and headless", opts: Options{AppMode: true, Headless: true}, wantErr: "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptionsFlags(t *testing.T) {
	f := DefaultOptions().flags()
	assert.Equal(t, "about:blank", f["app"])
	assert.Equal(t, "no-user-gesture-required", f["autoplay-policy"])
	assert.Equal(t, true, f["disable-popup-blocking"])
	_, headless := f["headless"]
	assert.False(t, headless)

	f = Options{Headless: true}.flags()
	assert.Equal(t, "new", f["headless"])
	_, app := f["app"]
	assert.False(t, app)
}

func TestAllocatorOptionsIncludeOptionalSettings(t *testing.T) {
	base := len(Options{}.allocatorOptions())

	full := Options{
		ExecPath:     "/usr/bin/chromium",
		UserDataDir:  "/tmp/profile",
		WindowWidth:  800,
		WindowHeight: 600,
	}.allocatorOptions()

	assert.Len(t, full, base+3)
}

func TestIsWebURL(t *testing.T) {
	assert.True(t, isWebURL("https://www.bilibili.com/video/BV1xyz"))
	assert.True(t, isWebURL("HTTP://example.com"))
	assert.False(t, isWebURL("about:blank"))
	assert.False(t, isWebURL(""))
	assert.False(t, isWebURL("chrome-error://chromewebdata/"))
	assert.False(t, isWebURL("javascript:void(0)"))
}

func TestOptionsLocate(t *testing.T) {
	t.Run("exec path must be executable", func(t *testing.T) {
		dir := t.TempDir()
		bin := filepath.Join(dir, "chrome")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o644))

		_, err := Options{ExecPath: bin}.Locate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not executable")

		require.NoError(t, os.Chmod(bin, 0o755))
		got, err := Options{ExecPath: bin}.Locate()
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("missing exec path", func(t *testing.T) {
		_, err := Options{ExecPath: filepath.Join(t.TempDir(), "nope")}.Locate()
		require.Error(t, err)
	})

	t.Run("searches PATH in order", func(t *testing.T) {
		orig := lookPath
		t.Cleanup(func() { lookPath = orig })

		lookPath = func(name string) (string, error) {
			if name == "chromium" {
				return "/usr/bin/chromium", nil
			}
			return "", exec.ErrNotFound
		}
		got, err := Options{}.Locate()
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/chromium", got)

		lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
		_, err = Options{}.Locate()
		require.ErrorIs(t, err, ErrBrowserNotFound)
	})
}
