package entity

// PageKind classifies a site URL for gating player affordances.
// It is derived from a URL on demand and never stored.
type PageKind int

const (
	// PageOther is any URL that matches no classification rule.
	PageOther PageKind = iota
	// PageHome is the configured home URL.
	PageHome
	// PageSearch is a search results page carrying a keyword.
	PageSearch
	// PageVideoWatch is a single-video watch page.
	PageVideoWatch
	// PageBangumiEpisode is an episode page in the bangumi URL space.
	PageBangumiEpisode
)

// String returns a human-readable representation of the page kind.
func (k PageKind) String() string {
	switch k {
	case PageHome:
		return "home"
	case PageSearch:
		return "search"
	case PageVideoWatch:
		return "video"
	case PageBangumiEpisode:
		return "bangumi"
	default:
		return "other"
	}
}

// Page is the result of classifying a URL.
type Page struct {
	Kind PageKind
	// ID is the identifier embedded in the path: the watch id for
	// PageVideoWatch, the episode id for PageBangumiEpisode.
	ID string
}

// IsPlayable reports whether the page hosts the in-page player.
func (p Page) IsPlayable() bool {
	return p.Kind == PageVideoWatch || p.Kind == PageBangumiEpisode
}

// String renders the page as kind or kind(id).
func (p Page) String() string {
	if p.ID == "" {
		return p.Kind.String()
	}
	return p.Kind.String() + "(" + p.ID + ")"
}
