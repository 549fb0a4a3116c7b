// Package chromium implements the rendering surface over the Chrome
// DevTools protocol using chromedp.
package chromium

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/chromedp/chromedp"
)

// Options configures how the surface obtains a browser.
type Options struct {
	// ExecPath overrides the Chromium binary. Empty means auto-detect.
	ExecPath string
	// RemoteURL attaches to a running browser's DevTools websocket
	// instead of launching one.
	RemoteURL    string
	Headless     bool
	UserDataDir  string
	WindowWidth  int
	WindowHeight int
	// AppMode opens a chromeless app window without tabs or omnibox.
	AppMode bool
}

// DefaultOptions returns options for a launched, windowed app-mode browser.
func DefaultOptions() Options {
	return Options{
		WindowWidth:  1280,
		WindowHeight: 800,
		AppMode:      true,
	}
}

// Validate reports configuration errors before any process is started.
func (o Options) Validate() error {
	var errs []error
	if o.RemoteURL != "" {
		u, err := url.Parse(o.RemoteURL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("browser.remote_url: %w", err))
		case u.Scheme != "ws" && u.Scheme != "wss" && u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, fmt.Errorf("browser.remote_url: unsupported scheme %q", u.Scheme))
		}
	}
	if o.WindowWidth < 0 || o.WindowHeight < 0 {
		errs = append(errs, errors.New("browser window size must not be negative"))
	}
	if o.AppMode && o.Headless {
		errs = append(errs, errors.New("browser.app_mode and browser.headless are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// Remote reports whether the surface attaches to an existing browser.
func (o Options) Remote() bool {
	return o.RemoteURL != ""
}

// browserNames are tried in order when ExecPath is empty.
var browserNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

var lookPath = exec.LookPath

// ErrBrowserNotFound is returned by Locate when no Chromium binary is on PATH.
var ErrBrowserNotFound = errors.New("no chromium browser found")

// Locate resolves the binary a launch would use.
func (o Options) Locate() (string, error) {
	if o.ExecPath != "" {
		info, err := os.Stat(o.ExecPath)
		if err != nil {
			return "", fmt.Errorf("browser.exec_path: %w", err)
		}
		if info.IsDir() || info.Mode()&0o111 == 0 {
			return "", fmt.Errorf("browser.exec_path: %s is not executable", o.ExecPath)
		}
		return o.ExecPath, nil
	}
	for _, name := range browserNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrBrowserNotFound, strings.Join(browserNames, ", "))
}

// flags returns the command line switches for a launched browser,
// without leading dashes.
func (o Options) flags() map[string]any {
	f := map[string]any{
		"disable-infobars":                    true,
		"disable-default-apps":                true,
		"disable-dev-shm-usage":               true,
		"disable-popup-blocking":              true,
		"disable-session-crashed-bubble":      true,
		"hide-crash-restore-bubble":           true,
		"disable-search-engine-choice-screen": true,
		"autoplay-policy":                     "no-user-gesture-required",
		"exclude-switches":                    "enable-automation",
		"disable-blink-features":              "AutomationControlled",
	}
	if o.AppMode {
		f["app"] = "about:blank"
	}
	if o.Headless {
		f["headless"] = "new"
	}
	return f
}

// allocatorOptions builds the chromedp exec allocator options.
func (o Options) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	}
	for name, value := range o.flags() {
		opts = append(opts, chromedp.Flag(name, value))
	}
	if o.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(o.UserDataDir))
	}
	if o.WindowWidth > 0 && o.WindowHeight > 0 {
		opts = append(opts, chromedp.WindowSize(o.WindowWidth, o.WindowHeight))
	}
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return opts
}

// isWebURL reports whether raw is an http(s) URL with a host.
func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
