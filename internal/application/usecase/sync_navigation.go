package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/bnema/bilishell/internal/logging"
)

// NavigationEventKind identifies what changed in a NavigationEvent.
type NavigationEventKind int

const (
	// EventAuthoritativeChanged fires when the authoritative URL changes,
	// either through Set or by adopting an in-page navigation.
	EventAuthoritativeChanged NavigationEventKind = iota
	// EventSettled fires when the live URL matches the authoritative URL.
	EventSettled
	// EventArrived fires once per canonically new settled page.
	EventArrived
	// EventFailed fires on navigation and provisional navigation failures.
	EventFailed
	// EventSurfaceChanged fires on attach, detach and back-state refreshes.
	EventSurfaceChanged
)

func (k NavigationEventKind) String() string {
	switch k {
	case EventAuthoritativeChanged:
		return "authoritative-changed"
	case EventSettled:
		return "settled"
	case EventArrived:
		return "arrived"
	case EventFailed:
		return "failed"
	case EventSurfaceChanged:
		return "surface-changed"
	default:
		return "unknown"
	}
}

// NavigationEvent is delivered to observers after every state change.
type NavigationEvent struct {
	Kind     NavigationEventKind
	Snapshot entity.NavigationSnapshot
	Err      error
}

// NavigationObserver receives navigation events on the coordinating loop.
type NavigationObserver func(NavigationEvent)

// SyncNavigationUseCase owns the authoritative URL and the attached
// rendering surface, and keeps the two converged.
//
// Every method must run on the coordinating loop. Surface callbacks are
// re-posted onto the loop through post before they touch state.
type SyncNavigationUseCase struct {
	post       func(func())
	classifier *url.Classifier

	state   entity.NavigationState
	surface port.Surface

	// loadFailed lets a repeated Set retry a pending load that failed.
	loadFailed bool

	lastArrived string
	newWindow   func(ctx context.Context, uri string)

	observers map[int]NavigationObserver
	nextObsID int
}

// NewSyncNavigationUseCase creates a synchronizer. post schedules work on
// the coordinating loop and must not be nil.
func NewSyncNavigationUseCase(post func(func()), classifier *url.Classifier) *SyncNavigationUseCase {
	if post == nil {
		panic("usecase.NewSyncNavigationUseCase: post function cannot be nil")
	}
	return &SyncNavigationUseCase{
		post:       post,
		classifier: classifier,
		observers:  make(map[int]NavigationObserver),
	}
}

// Surface returns the attached surface or nil.
func (uc *SyncNavigationUseCase) Surface() port.Surface {
	return uc.surface
}

// State returns a copy of the current navigation state.
func (uc *SyncNavigationUseCase) State() entity.NavigationState {
	return uc.state
}

// Snapshot returns the immutable view published to observers.
func (uc *SyncNavigationUseCase) Snapshot() entity.NavigationSnapshot {
	page := uc.classifier.Classify(uc.state.AuthoritativeURL)
	return entity.NavigationSnapshot{
		State:           uc.state,
		Page:            page,
		Affordances:     entity.AffordancesFor(page, uc.state.CanGoBack),
		SurfaceAttached: uc.surface != nil,
	}
}

// Subscribe registers an observer and returns a function removing it.
func (uc *SyncNavigationUseCase) Subscribe(obs NavigationObserver) func() {
	if obs == nil {
		return func() {}
	}
	id := uc.nextObsID
	uc.nextObsID++
	uc.observers[id] = obs
	return func() { delete(uc.observers, id) }
}

// SetNewWindowHandler replaces the default target-less navigation handling,
// which is to load the requested URL in the existing surface.
func (uc *SyncNavigationUseCase) SetNewWindowHandler(fn func(ctx context.Context, uri string)) {
	uc.newWindow = fn
}

// Attach binds surface and registers lifecycle callbacks. When a load is
// pending the surface is instructed to perform it.
func (uc *SyncNavigationUseCase) Attach(ctx context.Context, surface port.Surface) {
	if surface == nil {
		return
	}
	log := logging.FromContext(ctx)

	if uc.surface != nil && uc.surface != surface {
		uc.surface.SetCallbacks(nil)
	}
	uc.surface = surface

	surface.SetCallbacks(&port.SurfaceCallbacks{
		OnNavigationFinished: func(uri string, canGoBack bool) {
			uc.post(func() { uc.HandleNavigationFinished(ctx, uri, canGoBack) })
		},
		OnNavigationFailed: func(err error) {
			uc.post(func() { uc.HandleNavigationFailed(ctx, err, false) })
		},
		OnProvisionalNavigationFailed: func(err error) {
			uc.post(func() { uc.HandleNavigationFailed(ctx, err, true) })
		},
		OnNewWindowRequested: func(uri string) {
			uc.post(func() { uc.handleNewWindow(ctx, uri) })
		},
	})

	if live := surface.URI(); live != "" {
		uc.state.LiveURL = live
		uc.state.HasLive = true
	}
	uc.state.CanGoBack = surface.CanGoBack()

	log.Debug().
		Str("live", logging.TruncateURL(uc.state.LiveURL)).
		Str("phase", uc.state.Phase.String()).
		Msg("surface attached")
	uc.emit(EventSurfaceChanged, nil)

	if uc.state.Phase == entity.PhaseLoadRequested {
		if uc.state.HasLive && url.CanonicalEqual(uc.state.LiveURL, uc.state.AuthoritativeURL) {
			uc.settle(ctx)
			return
		}
		uc.load(ctx)
	}
}

// Detach clears the surface callbacks and forgets the handle.
func (uc *SyncNavigationUseCase) Detach(ctx context.Context) {
	if uc.surface == nil {
		return
	}
	uc.surface.SetCallbacks(nil)
	uc.surface = nil
	uc.state.HasLive = false
	uc.state.CanGoBack = false

	logging.FromContext(ctx).Debug().Msg("surface detached")
	uc.emit(EventSurfaceChanged, nil)
}

// Set assigns a new authoritative URL. The surface is instructed to load it
// unless it already shows a canonically equal page.
func (uc *SyncNavigationUseCase) Set(ctx context.Context, rawURL string) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return
	}
	log := logging.FromContext(ctx)

	changed := !url.CanonicalEqual(rawURL, uc.state.AuthoritativeURL) || uc.state.Phase == entity.PhaseIdle
	uc.state.AuthoritativeURL = rawURL

	if uc.state.HasLive && url.CanonicalEqual(rawURL, uc.state.LiveURL) {
		log.Debug().Str("url", logging.TruncateURL(rawURL)).Msg("surface already shows requested page, skipping load")
		if changed {
			uc.emit(EventAuthoritativeChanged, nil)
		}
		uc.settle(ctx)
		return
	}

	if !changed && uc.state.Phase == entity.PhaseLoadRequested && !uc.loadFailed {
		log.Debug().Str("url", logging.TruncateURL(rawURL)).Msg("load already pending")
		return
	}

	uc.state.Phase = entity.PhaseLoadRequested
	uc.loadFailed = false

	log.Debug().Str("url", logging.TruncateURL(rawURL)).Msg("authoritative URL set")
	uc.emit(EventAuthoritativeChanged, nil)
	uc.load(ctx)
}

func (uc *SyncNavigationUseCase) load(ctx context.Context) {
	log := logging.FromContext(ctx)
	if uc.surface == nil {
		log.Debug().Msg("no surface attached, load deferred until attach")
		return
	}
	target := uc.state.AuthoritativeURL
	if err := uc.surface.LoadURI(ctx, target); err != nil {
		log.Warn().Err(err).Str("url", logging.TruncateURL(target)).Msg("surface rejected load")
		uc.loadFailed = true
		uc.emit(EventFailed, err)
	}
}

// HandleNavigationFinished reconciles a finished navigation reported by
// the surface with the authoritative URL. The surface only reports the
// document it committed, so a differing URL (redirect, in-page change) is
// adopted.
func (uc *SyncNavigationUseCase) HandleNavigationFinished(ctx context.Context, liveURL string, canGoBack bool) {
	log := logging.FromContext(ctx)

	uc.state.CanGoBack = canGoBack
	if liveURL == "" {
		uc.emit(EventSurfaceChanged, nil)
		return
	}
	uc.state.LiveURL = liveURL
	uc.state.HasLive = true

	if !url.CanonicalEqual(liveURL, uc.state.AuthoritativeURL) {
		log.Debug().
			Str("from", logging.TruncateURL(uc.state.AuthoritativeURL)).
			Str("to", logging.TruncateURL(liveURL)).
			Msg("adopting surface URL")
		uc.state.AuthoritativeURL = liveURL
		uc.emit(EventAuthoritativeChanged, nil)
	}
	uc.settle(ctx)
}

// HandleNavigationFailed logs a navigation failure. The phase is kept and
// nothing is retried.
func (uc *SyncNavigationUseCase) HandleNavigationFailed(ctx context.Context, err error, provisional bool) {
	if uc.surface != nil {
		uc.state.CanGoBack = uc.surface.CanGoBack()
	}
	uc.loadFailed = true
	logging.FromContext(ctx).Warn().
		Err(err).
		Bool("provisional", provisional).
		Str("url", logging.TruncateURL(uc.state.AuthoritativeURL)).
		Str("phase", uc.state.Phase.String()).
		Msg("navigation failed")
	uc.emit(EventFailed, err)
}

func (uc *SyncNavigationUseCase) handleNewWindow(ctx context.Context, uri string) {
	if uc.newWindow != nil {
		uc.newWindow(ctx, uri)
		return
	}
	uc.Set(ctx, uri)
}

func (uc *SyncNavigationUseCase) settle(ctx context.Context) {
	uc.state.Phase = entity.PhaseSettled
	uc.loadFailed = false
	uc.emit(EventSettled, nil)

	key := url.Canonicalize(uc.state.AuthoritativeURL)
	if key == uc.lastArrived {
		return
	}
	uc.lastArrived = key

	logging.FromContext(ctx).Debug().
		Str("url", logging.TruncateURL(uc.state.AuthoritativeURL)).
		Msg("arrived on page")
	uc.emit(EventArrived, nil)
}

func (uc *SyncNavigationUseCase) emit(kind NavigationEventKind, err error) {
	if len(uc.observers) == 0 {
		return
	}
	ev := NavigationEvent{Kind: kind, Snapshot: uc.Snapshot(), Err: err}
	for _, id := range uc.sortedObserverIDs() {
		if obs, ok := uc.observers[id]; ok {
			obs(ev)
		}
	}
}

func (uc *SyncNavigationUseCase) sortedObserverIDs() []int {
	ids := make([]int, 0, len(uc.observers))
	for id := range uc.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
