package crawl

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// MatchMode selects how a candidate host is compared to the scope domain.
type MatchMode string

// Scope match policies.
const (
	// MatchExact accepts only the seed's exact netloc (host[:port]).
	MatchExact MatchMode = "exact"

	// MatchSubstring accepts any netloc containing the seed's netloc.
	// It tolerates subdomains at the cost of over-inclusion
	// (example.com also matches notexample.com).
	MatchSubstring MatchMode = "substring"

	// MatchSite accepts the seed host, the apex of its registrable domain,
	// and the apex's www. host on the seed's port.
	MatchSite MatchMode = "site"
)

// Scope decides whether candidate URLs belong to one crawl.
// Hosts listed in Allow are accepted under every mode.
type Scope struct {
	Domain string
	Match  MatchMode
	Allow  []string

	site string
}

// NewScope builds a Scope from the seed URL's netloc.
// An empty match defaults to MatchExact.
func NewScope(seedURL string, match MatchMode, allow ...string) (*Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	if u.Host == "" {
		return nil, ErrInvalidURL
	}
	if match == "" {
		match = MatchExact
	}

	s := &Scope{
		Domain: strings.ToLower(u.Host),
		Match:  match,
	}
	for _, h := range allow {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.Allow = append(s.Allow, h)
		}
	}
	if site, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname())); err == nil {
		s.site = site
	}
	return s, nil
}

// InScope reports whether rawURL is http(s) and its netloc satisfies the policy.
// Malformed URLs are out of scope.
func (s *Scope) InScope(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Host)
	if host == "" {
		return false
	}

	for _, h := range s.Allow {
		if host == h {
			return true
		}
	}

	switch s.Match {
	case MatchSubstring:
		return strings.Contains(host, s.Domain)
	case MatchSite:
		return s.sameSite(u)
	default:
		return host == s.Domain
	}
}

func (s *Scope) sameSite(u *url.URL) bool {
	host := strings.ToLower(u.Host)
	if host == s.Domain {
		return true
	}
	if s.site == "" {
		return false
	}
	seed, _ := url.Parse("//" + s.Domain)
	if u.Port() != seed.Port() {
		return false
	}
	hostname := strings.ToLower(u.Hostname())
	return hostname == s.site || hostname == "www."+s.site
}
