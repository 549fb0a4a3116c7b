// Package url provides URL classification, canonicalization and
// construction for the shell's single site.
package url

import (
	"net/url"
	"strings"
)

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if hasWebScheme(input) {
		return input
	}

	// Protocol-relative links as emitted by the site's own markup.
	if strings.HasPrefix(input, "//") {
		return "https:" + input
	}

	if LooksLikeURL(input) {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "bilibili.com", "www.bilibili.com/video/BV1xx".
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasWebScheme(input) {
		return true
	}

	// Contains a dot and no spaces = likely a URL
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// ExtractHost returns the lowercased host of a URL without its port.
// Returns "" for unparsable input or URLs without a host.
func ExtractHost(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// HostMatches reports whether host equals want or is one of its subdomains.
func HostMatches(host, want string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	want = strings.ToLower(want)
	if host == "" || want == "" {
		return false
	}
	return host == want || strings.HasSuffix(host, "."+want)
}

func hasWebScheme(input string) bool {
	lower := strings.ToLower(input)
	switch {
	case strings.HasPrefix(lower, "http://"):
		return true
	case strings.HasPrefix(lower, "https://"):
		return true
	case strings.HasPrefix(lower, "about:"):
		return true
	}
	return false
}
