package url

import (
	"errors"
	"fmt"

	"github.com/bnema/bilishell/internal/domain/entity"
)

// ErrOffSite is returned for start URLs outside the site's domain.
var ErrOffSite = errors.New("url is not on the site")

// ResolveStartURL normalizes input and checks it belongs to the site.
// An empty input resolves to the home URL.
func ResolveStartURL(site entity.SiteProfile, input string) (string, error) {
	normalized := Normalize(input)
	if normalized == "" {
		return site.HomeURL, nil
	}
	host := ExtractHost(normalized)
	if !HostMatches(host, site.Domain) {
		return "", fmt.Errorf("%q: %w (%s)", input, ErrOffSite, site.Domain)
	}
	return normalized, nil
}
