package url

import (
	"net/url"
	"strings"

	"github.com/bnema/bilishell/internal/domain/entity"
)

// ClassificationRule maps a host and path prefix to a page kind.
type ClassificationRule struct {
	Host       string
	PathPrefix string
	Kind       entity.PageKind
}

// match reports whether the rule applies and extracts the id segment
// that immediately follows the prefix.
func (r ClassificationRule) match(u *url.URL) (string, bool) {
	if !HostMatches(u.Hostname(), r.Host) {
		return "", false
	}
	if !strings.HasPrefix(u.Path, r.PathPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(u.Path, r.PathPrefix)
	id, _, _ := strings.Cut(strings.TrimPrefix(rest, "/"), "/")
	if id == "" {
		return "", false
	}
	return id, true
}

// Classifier maps URLs to page kinds for one site profile.
// It is pure and safe for concurrent use.
type Classifier struct {
	rules         []ClassificationRule
	home          string
	searchHost    string
	searchPath    string
	searchKeyword string
}

// NewClassifier builds the rule table from a site profile.
func NewClassifier(site entity.SiteProfile) *Classifier {
	c := &Classifier{
		rules: []ClassificationRule{
			{Host: site.VideoHost, PathPrefix: ensureTrailingSlash(site.WatchPathPrefix), Kind: entity.PageVideoWatch},
			{Host: site.VideoHost, PathPrefix: ensureTrailingSlash(site.BangumiPathPrefix), Kind: entity.PageBangumiEpisode},
		},
		home:          homeKey(site.HomeURL),
		searchKeyword: site.SearchKeyword,
	}
	if u, err := url.Parse(site.SearchBaseURL); err == nil {
		c.searchHost = strings.ToLower(u.Hostname())
		c.searchPath = u.Path
	}
	return c
}

// Classify returns the page kind of rawURL. Unparsable or foreign URLs
// classify as entity.PageOther; this function never panics.
func (c *Classifier) Classify(rawURL string) entity.Page {
	if rawURL == "" {
		return entity.Page{Kind: entity.PageOther}
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return entity.Page{Kind: entity.PageOther}
	}

	for _, rule := range c.rules {
		if id, ok := rule.match(u); ok {
			return entity.Page{Kind: rule.Kind, ID: id}
		}
	}

	if c.home != "" && homeKey(rawURL) == c.home {
		return entity.Page{Kind: entity.PageHome}
	}

	if c.isSearch(u) {
		return entity.Page{Kind: entity.PageSearch}
	}

	return entity.Page{Kind: entity.PageOther}
}

func (c *Classifier) isSearch(u *url.URL) bool {
	if c.searchHost == "" || strings.ToLower(u.Hostname()) != c.searchHost {
		return false
	}
	if strings.TrimSuffix(u.Path, "/") != strings.TrimSuffix(c.searchPath, "/") {
		return false
	}
	return strings.TrimSpace(u.Query().Get(c.searchKeyword)) != ""
}

// homeKey canonicalizes a URL and folds a bare "/" path into the empty
// path, so the site root with and without trailing slash compare equal.
func homeKey(raw string) string {
	s := Canonicalize(raw)
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if u.Path == "/" {
		u.Path = ""
	}
	u.Host = strings.ToLower(u.Host)
	u.Scheme = strings.ToLower(u.Scheme)
	return u.String()
}

func ensureTrailingSlash(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}
