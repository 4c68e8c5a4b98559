package crawl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a candidate cannot be turned into an
// absolute URL. Callers drop the candidate.
var ErrInvalidURL = errors.New("invalid URL")

// Normalize resolves ref against base and returns its canonical form:
// lowercase scheme and host, no query, no fragment, and "/" for an empty path.
// The result is the deduplication key for the frontier and visited set.
// A nil base means ref must already be absolute.
//
// Normalize is idempotent: Normalize(nil, Normalize(base, ref)) yields the
// same string.
func Normalize(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme == "" || u.Host == "" || u.Opaque != "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, ref)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String(), nil
}

// NormalizeString normalizes an absolute URL string.
func NormalizeString(rawURL string) (string, error) {
	return Normalize(nil, rawURL)
}
