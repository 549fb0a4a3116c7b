package url

import (
	"regexp"
	"strings"
)

// TrackingParam is the volatile query parameter the site appends to
// in-page links. It differs on every click, so it is ignored for equality.
const TrackingParam = "vd_source"

var (
	trackingParamRe      = regexp.MustCompile(`&` + TrackingParam + `=[^&]*`)
	leadingTrackingParam = regexp.MustCompile(`\?` + TrackingParam + `=[^&]*(&|$)`)
)

// Canonicalize normalizes a URL string for equality comparison only.
// The result is never loaded: it exists so that a finished navigation
// reporting a cosmetically different URL does not trigger another load.
//
// Rules, in order: %3A is decoded to ':'; every &vd_source=... pair is
// removed in one pass, and a leading ?vd_source=... pair is removed with
// the next pair promoted to the first position.
func Canonicalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ReplaceAll(raw, "%3A", ":")
	s = strings.ReplaceAll(s, "%3a", ":")
	s = trackingParamRe.ReplaceAllString(s, "")
	s = leadingTrackingParam.ReplaceAllStringFunc(s, func(m string) string {
		if strings.HasSuffix(m, "&") {
			return "?"
		}
		return ""
	})
	return s
}

// CanonicalEqual reports whether two URLs denote the same page.
func CanonicalEqual(a, b string) bool {
	return Canonicalize(a) == Canonicalize(b)
}
