package url

import (
	"errors"
	"net/url"
	"strings"

	"github.com/bnema/bilishell/internal/domain/entity"
)

// ErrEmptyKeyword is returned when a search keyword is blank.
var ErrEmptyKeyword = errors.New("empty search keyword")

// EncodeQueryValue percent-encodes s for use as a query value.
// Spaces become %20 rather than '+', matching what the site emits.
func EncodeQueryValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CanSearch reports whether keyword would produce a search URL.
func CanSearch(keyword string) bool {
	return strings.TrimSpace(keyword) != ""
}

// BuildSearchURL constructs the site's search URL for keyword.
// The keyword parameter comes first, followed by the fixed tracking suffix.
//
// Example:
//
//	"4k 街景" → https://search.bilibili.com/all?keyword=4k%20%E8%A1%97%E6%99%AF&from_source=...
func BuildSearchURL(site entity.SiteProfile, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}

	var b strings.Builder
	b.WriteString(site.SearchBaseURL)
	b.WriteByte('?')
	b.WriteString(site.SearchKeyword)
	b.WriteByte('=')
	b.WriteString(EncodeQueryValue(keyword))
	if site.SearchTracking != "" {
		b.WriteByte('&')
		b.WriteString(site.SearchTracking)
	}
	return b.String(), nil
}
