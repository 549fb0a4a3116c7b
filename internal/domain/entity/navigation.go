package entity

// NavigationPhase is the synchronizer's view of the surface.
type NavigationPhase int

const (
	// PhaseIdle means no load has been requested yet.
	PhaseIdle NavigationPhase = iota
	// PhaseLoadRequested means the authoritative URL changed and the
	// surface has not yet reported a matching finished navigation.
	PhaseLoadRequested
	// PhaseSettled means the live URL canonically equals the authoritative URL.
	PhaseSettled
)

// String returns a human-readable representation of the phase.
func (p NavigationPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadRequested:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// NavigationState is the single source of truth for the displayed page.
type NavigationState struct {
	AuthoritativeURL string
	LiveURL          string
	HasLive          bool
	CanGoBack        bool
	Phase            NavigationPhase
}

// Affordances are the classification-derived booleans the host UI binds to.
type Affordances struct {
	IsVideoPage         bool
	IsBangumiPage       bool
	CanGoBack           bool
	CanToggleFullscreen bool
	CanTogglePlayPause  bool
}

// AffordancesFor derives the enabled commands for a page.
// Play/pause has no bangumi script, so it is only enabled on watch pages.
func AffordancesFor(page Page, canGoBack bool) Affordances {
	return Affordances{
		IsVideoPage:         page.Kind == PageVideoWatch,
		IsBangumiPage:       page.Kind == PageBangumiEpisode,
		CanGoBack:           canGoBack,
		CanToggleFullscreen: page.IsPlayable(),
		CanTogglePlayPause:  page.Kind == PageVideoWatch,
	}
}

// NavigationSnapshot is an immutable view of navigation state for observers.
type NavigationSnapshot struct {
	State           NavigationState
	Page            Page
	Affordances     Affordances
	SurfaceAttached bool
}
