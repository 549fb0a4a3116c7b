package chromium

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/logging"
)

const (
	commandTimeout    = 5 * time.Second
	navigationTimeout = 45 * time.Second
	eventBuffer       = 64
)

// ErrClosed is returned by Wait when the browser window went away.
var ErrClosed = errors.New("browser window closed")

// Surface drives one Chromium page target. Lifecycle events arrive on
// chromedp's listener goroutines and are serialized through a single
// dispatch goroutine before callbacks fire.
type Surface struct {
	opts Options
	log  zerolog.Logger

	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc

	mu        sync.RWMutex
	targetID  target.ID
	uri       string
	canGoBack bool
	callbacks *port.SurfaceCallbacks
	mainDocs  map[network.RequestID]struct{}
	popups    map[target.ID]struct{}

	// requested counts LoadURI calls in flight; their failures are
	// reported by LoadURI itself.
	requested atomic.Int32

	// loadSeq numbers LoadURI calls. awaiting holds the number of the load
	// whose main-frame commit has not been seen yet, or 0. Finish events
	// before that commit belong to the previous document.
	loadSeq  atomic.Uint64
	awaiting atomic.Uint64

	events      chan func()
	closed      chan struct{}
	closeOnce   sync.Once
	closeTarget func(id target.ID) error
}

// New creates a surface. Start must be called before use.
func New(ctx context.Context, opts Options) *Surface {
	s := &Surface{
		opts:     opts,
		log:      *logging.FromContext(logging.WithComponent(ctx, "chromium")),
		mainDocs: make(map[network.RequestID]struct{}),
		popups:   make(map[target.ID]struct{}),
		events:   make(chan func(), eventBuffer),
		closed:   make(chan struct{}),
	}
	s.closeTarget = s.closeTargetCDP
	return s
}

var _ port.Surface = (*Surface)(nil)

// Start launches or attaches to the browser and binds the page target.
func (s *Surface) Start(ctx context.Context) error {
	if err := s.opts.Validate(); err != nil {
		return err
	}

	var allocCtx context.Context
	if s.opts.Remote() {
		s.log.Info().Str("url", s.opts.RemoteURL).Msg("attaching to running browser")
		allocCtx, s.allocCancel = chromedp.NewRemoteAllocator(context.Background(), s.opts.RemoteURL)
	} else {
		s.log.Info().
			Str("profile", s.opts.UserDataDir).
			Bool("headless", s.opts.Headless).
			Msg("launching browser")
		allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), s.opts.allocatorOptions()...)
	}

	s.tabCtx, s.tabCancel = chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			s.log.Debug().Msgf(format, args...)
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			s.log.Warn().Msgf(format, args...)
		}),
	)
	chromedp.ListenTarget(s.tabCtx, s.onTargetEvent)

	startCtx, cancel := context.WithTimeout(s.tabCtx, navigationTimeout)
	defer cancel()
	err := chromedp.Run(startCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			c := chromedp.FromContext(ctx)
			return target.SetDiscoverTargets(true).Do(cdp.WithExecutor(ctx, c.Browser))
		}),
	)
	if err != nil {
		s.Close()
		return fmt.Errorf("start browser: %w", err)
	}

	s.mu.Lock()
	s.targetID = chromedp.FromContext(s.tabCtx).Target.TargetID
	s.mu.Unlock()
	chromedp.ListenBrowser(s.tabCtx, s.onBrowserEvent)

	go s.dispatch()
	go func() {
		<-s.tabCtx.Done()
		s.markClosed()
	}()

	s.log.Debug().Str("target", string(s.targetID)).Msg("browser ready")
	return nil
}

// Wait blocks until ctx is done or the browser window closes.
func (s *Surface) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrClosed
	}
}

// Close shuts the page target down; a launched browser exits with it.
func (s *Surface) Close() {
	if s.tabCancel != nil {
		s.tabCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	s.markClosed()
}

func (s *Surface) markClosed() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// LoadURI starts a navigation and returns once it was issued. A failure
// to load is reported through OnProvisionalNavigationFailed.
func (s *Surface) LoadURI(ctx context.Context, uri string) error {
	if s.tabCtx == nil || s.tabCtx.Err() != nil {
		return ErrClosed
	}
	logging.FromContext(ctx).Debug().Str("uri", logging.TruncateURL(uri)).Msg("loading URI")

	s.requested.Add(1)
	seq := s.beginLoad()
	go func() {
		defer s.requested.Add(-1)

		navCtx, cancel := context.WithTimeout(s.tabCtx, navigationTimeout)
		defer cancel()
		err := chromedp.Run(navCtx, chromedp.Navigate(uri))
		// Either the commit was seen or none is coming for this load.
		s.endLoad(seq)
		if err == nil || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		if isAborted(err) {
			s.log.Debug().Str("uri", logging.TruncateURL(uri)).Msg("navigation superseded")
			return
		}
		s.log.Debug().Err(err).Str("uri", logging.TruncateURL(uri)).Msg("navigation failed before commit")
		s.enqueue(func() {
			if cb := s.getCallbacks(); cb != nil && cb.OnProvisionalNavigationFailed != nil {
				cb.OnProvisionalNavigationFailed(err)
			}
		})
	}()
	return nil
}

// beginLoad marks a new load as waiting for its commit.
func (s *Surface) beginLoad() uint64 {
	seq := s.loadSeq.Add(1)
	s.awaiting.Store(seq)
	return seq
}

// endLoad stops waiting for load seq unless a newer load replaced it.
func (s *Surface) endLoad(seq uint64) {
	s.awaiting.CompareAndSwap(seq, 0)
}

// isAborted reports navigations cancelled by the caller or replaced by a
// newer one.
func isAborted(err error) bool {
	return errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "net::ERR_ABORTED")
}

// URI returns the last main-frame URL the page committed.
func (s *Surface) URI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uri
}

// CanGoBack returns the back state read at the last lifecycle event.
func (s *Surface) CanGoBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canGoBack
}

// GoBack navigates to the previous history entry.
func (s *Surface) GoBack(ctx context.Context) error {
	if s.tabCtx == nil || s.tabCtx.Err() != nil {
		return ErrClosed
	}
	cmdCtx, cancel := context.WithTimeout(s.tabCtx, commandTimeout)
	defer cancel()

	return chromedp.Run(cmdCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		current, entries, err := page.GetNavigationHistory().Do(ctx)
		if err != nil {
			return fmt.Errorf("read navigation history: %w", err)
		}
		if current <= 0 || int(current) > len(entries)-1 {
			return errors.New("no previous history entry")
		}
		return page.NavigateToHistoryEntry(entries[current-1].ID).Do(ctx)
	}))
}

// EvaluateScript runs script in the page on a goroutine. The evaluation is
// bound to the page, not to ctx: it is not cancelled when ctx expires.
func (s *Surface) EvaluateScript(ctx context.Context, script string, done func(port.ScriptResult)) {
	if done == nil {
		done = func(port.ScriptResult) {}
	}
	if s.tabCtx == nil || s.tabCtx.Err() != nil {
		done(port.ScriptResult{Err: ErrClosed})
		return
	}
	go func() {
		evalCtx, cancel := context.WithTimeout(s.tabCtx, commandTimeout)
		defer cancel()

		var value any
		err := chromedp.Run(evalCtx, chromedp.Evaluate(script, &value))
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("script evaluation failed")
		}
		done(port.ScriptResult{Value: value, Err: err})
	}()
}

// SetCallbacks registers callback handlers. Passing nil clears them.
func (s *Surface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	s.mu.Unlock()
}

func (s *Surface) getCallbacks() *port.SurfaceCallbacks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.callbacks
}

func (s *Surface) mainFrameID() cdp.FrameID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// The main frame of a page target shares the target's id.
	return cdp.FrameID(s.targetID)
}

// enqueue hands work to the dispatch goroutine without blocking the
// chromedp listener. Events are dropped when the buffer is full.
func (s *Surface) enqueue(fn func()) {
	select {
	case s.events <- fn:
	default:
		s.log.Warn().Msg("surface event buffer full, dropping event")
	}
}

func (s *Surface) dispatch() {
	for {
		select {
		case <-s.closed:
			return
		case fn := <-s.events:
			fn()
		}
	}
}

func (s *Surface) onTargetEvent(ev any) {
	switch ev := ev.(type) {
	case *page.EventFrameNavigated:
		if ev.Frame == nil || ev.Frame.ParentID != "" {
			return
		}
		s.awaiting.Store(0)
		if strings.HasPrefix(ev.Frame.URL, "chrome-error:") {
			err := fmt.Errorf("page failed to load: %s", ev.Frame.UnreachableURL)
			s.enqueue(func() { s.reportFailed(err) })
			return
		}
		s.setURI(ev.Frame.URL + ev.Frame.URLFragment)

	case *page.EventNavigatedWithinDocument:
		if ev.FrameID != s.mainFrameID() {
			return
		}
		if s.awaiting.Load() != 0 {
			return
		}
		s.setURI(ev.URL)
		s.enqueue(s.reportFinished)

	case *page.EventLoadEventFired:
		if s.awaiting.Load() != 0 {
			s.log.Debug().Msg("ignoring load event of previous document")
			return
		}
		s.enqueue(s.reportFinished)

	case *network.EventRequestWillBeSent:
		if ev.Type != network.ResourceTypeDocument || ev.FrameID != s.mainFrameID() {
			return
		}
		s.mu.Lock()
		s.mainDocs[ev.RequestID] = struct{}{}
		s.mu.Unlock()

	case *network.EventLoadingFinished:
		s.forgetDocument(ev.RequestID)

	case *network.EventLoadingFailed:
		if !s.forgetDocument(ev.RequestID) || ev.Canceled || s.requested.Load() > 0 {
			return
		}
		err := fmt.Errorf("document load failed: %s", ev.ErrorText)
		s.enqueue(func() { s.reportFailed(err) })
	}
}

func (s *Surface) onBrowserEvent(ev any) {
	switch ev := ev.(type) {
	case *target.EventTargetCreated:
		s.considerPopup(ev.TargetInfo)
	case *target.EventTargetInfoChanged:
		s.considerPopup(ev.TargetInfo)
	case *target.EventTargetDestroyed:
		s.mu.Lock()
		delete(s.popups, ev.TargetID)
		own := ev.TargetID == s.targetID
		s.mu.Unlock()
		if own {
			s.log.Info().Msg("browser window destroyed")
			s.markClosed()
		}
	}
}

// considerPopup redirects page targets opened by our page: as soon as the
// new target knows its destination it is closed and the destination is
// handed to OnNewWindowRequested.
func (s *Surface) considerPopup(info *target.Info) {
	if info == nil || info.Type != "page" {
		return
	}

	s.mu.Lock()
	_, tracked := s.popups[info.TargetID]
	isChild := info.OpenerID != "" && info.OpenerID == s.targetID
	if !tracked && !isChild {
		s.mu.Unlock()
		return
	}
	if !isWebURL(info.URL) {
		s.popups[info.TargetID] = struct{}{}
		s.mu.Unlock()
		return
	}
	delete(s.popups, info.TargetID)
	s.mu.Unlock()

	id, uri := info.TargetID, info.URL
	s.enqueue(func() {
		if err := s.closeTarget(id); err != nil {
			s.log.Debug().Err(err).Str("target", string(id)).Msg("failed to close popup target")
		}
		if cb := s.getCallbacks(); cb != nil && cb.OnNewWindowRequested != nil {
			cb.OnNewWindowRequested(uri)
		}
	})
}

func (s *Surface) closeTargetCDP(id target.ID) error {
	ctx, cancel := context.WithTimeout(s.tabCtx, commandTimeout)
	defer cancel()
	c := chromedp.FromContext(ctx)
	if c == nil || c.Browser == nil {
		return ErrClosed
	}
	return target.CloseTarget(id).Do(cdp.WithExecutor(ctx, c.Browser))
}

func (s *Surface) forgetDocument(id network.RequestID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.mainDocs[id]
	delete(s.mainDocs, id)
	return ok
}

func (s *Surface) setURI(uri string) {
	s.mu.Lock()
	s.uri = uri
	s.mu.Unlock()
}

// refreshHistory reads the back state from the page. It keeps the
// previous value when the page cannot be queried.
func (s *Surface) refreshHistory() bool {
	if s.tabCtx == nil {
		return s.CanGoBack()
	}
	ctx, cancel := context.WithTimeout(s.tabCtx, commandTimeout)
	defer cancel()

	var current int64
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		idx, _, err := page.GetNavigationHistory().Do(ctx)
		current = idx
		return err
	}))
	if err != nil {
		s.log.Debug().Err(err).Msg("failed to read navigation history")
		return s.CanGoBack()
	}

	s.mu.Lock()
	s.canGoBack = current > 0
	s.mu.Unlock()
	return current > 0
}

func (s *Surface) reportFinished() {
	canGoBack := s.refreshHistory()
	uri := s.URI()
	if cb := s.getCallbacks(); cb != nil && cb.OnNavigationFinished != nil {
		cb.OnNavigationFinished(uri, canGoBack)
	}
}

func (s *Surface) reportFailed(err error) {
	s.refreshHistory()
	if cb := s.getCallbacks(); cb != nil && cb.OnNavigationFailed != nil {
		cb.OnNavigationFailed(err)
	}
}
