package port

import "context"

// ScriptResult is the outcome of one script evaluation in the page.
// Err is set for script exceptions and transport failures alike.
type ScriptResult struct {
	Value any
	Err   error
}

// OK reports whether the script completed without error.
func (r ScriptResult) OK() bool {
	return r.Err == nil
}

// SurfaceCallbacks defines callback handlers for rendering surface events.
// Callbacks are invoked on the surface's own goroutines; receivers must
// marshal onto the coordinating loop before touching shared state.
type SurfaceCallbacks struct {
	// OnNavigationFinished is called when a main-frame navigation commits
	// and finishes loading, or on a same-document URL change. After LoadURI
	// it is not called for the previous document: the reported URL is the
	// page the surface ended up on.
	OnNavigationFinished func(uri string, canGoBack bool)
	// OnNavigationFailed is called when a committed navigation fails.
	OnNavigationFailed func(err error)
	// OnProvisionalNavigationFailed is called when a navigation fails
	// before anything was committed (DNS, refused connection, aborted).
	OnProvisionalNavigationFailed func(err error)
	// OnNewWindowRequested is called for target-less navigations the page
	// tried to open in a new window. The new window is never shown.
	OnNewWindowRequested func(uri string)
}

// Surface is the single page-rendering surface the shell drives.
// Implementations wrap a browser engine (Chromium over DevTools).
type Surface interface {
	// LoadURI starts a navigation. It returns once the request was issued;
	// completion is reported through SurfaceCallbacks.
	LoadURI(ctx context.Context, uri string) error

	// URI returns the URL the surface currently shows, or "".
	URI() string

	// CanGoBack reports whether the surface has a previous history entry.
	CanGoBack() bool

	// GoBack navigates one entry back in the surface's own history.
	GoBack(ctx context.Context) error

	// EvaluateScript runs script in the page and calls done exactly once
	// with the result. It does not block; done may fire after ctx expired.
	EvaluateScript(ctx context.Context, script string, done func(ScriptResult))

	// SetCallbacks registers callback handlers. Passing nil clears them.
	SetCallbacks(callbacks *SurfaceCallbacks)
}
