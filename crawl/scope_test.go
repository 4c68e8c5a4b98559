package crawl_test

import (
	"testing"

	"github.com/fwojciec/siteinv/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScope(t *testing.T) {
	t.Parallel()

	t.Run("uses the seed netloc as the domain", func(t *testing.T) {
		t.Parallel()

		s, err := crawl.NewScope("http://Example.com:8080/start", "")

		require.NoError(t, err)
		assert.Equal(t, "example.com:8080", s.Domain)
		assert.Equal(t, crawl.MatchExact, s.Match)
	})

	t.Run("rejects a seed without a host", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.NewScope("/just/a/path", crawl.MatchExact)

		assert.ErrorIs(t, err, crawl.ErrInvalidURL)
	})

	t.Run("normalizes allowed hosts", func(t *testing.T) {
		t.Parallel()

		s, err := crawl.NewScope("http://example.com/", crawl.MatchExact, " CDN.Example.net ", "")

		require.NoError(t, err)
		assert.Equal(t, []string{"cdn.example.net"}, s.Allow)
	})
}

func TestScope_InScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		match crawl.MatchMode
		url   string
		want  bool
	}{
		{"exact accepts the seed host", crawl.MatchExact, "http://example.com/a", true},
		{"exact accepts https on the seed host", crawl.MatchExact, "https://example.com/a", true},
		{"exact ignores host case", crawl.MatchExact, "http://EXAMPLE.com/a", true},
		{"exact rejects other hosts", crawl.MatchExact, "http://other.com/", false},
		{"exact rejects subdomains", crawl.MatchExact, "http://www.example.com/", false},
		{"exact rejects another port", crawl.MatchExact, "http://example.com:8080/", false},
		{"exact rejects non-http schemes", crawl.MatchExact, "ftp://example.com/file", false},
		{"exact rejects mailto", crawl.MatchExact, "mailto:a@example.com", false},
		{"exact rejects relative URLs", crawl.MatchExact, "/a", false},
		{"substring accepts subdomains", crawl.MatchSubstring, "http://docs.example.com/", true},
		{"substring over-includes lookalike hosts", crawl.MatchSubstring, "http://notexample.com/", true},
		{"substring rejects unrelated hosts", crawl.MatchSubstring, "http://other.com/", false},
		{"site accepts the www host", crawl.MatchSite, "http://www.example.com/", true},
		{"site accepts the apex", crawl.MatchSite, "https://example.com/", true},
		{"site rejects other subdomains", crawl.MatchSite, "http://cdn.example.com/", false},
		{"site rejects lookalike hosts", crawl.MatchSite, "http://notexample.com/", false},
		{"site rejects another port", crawl.MatchSite, "http://www.example.com:8443/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := crawl.NewScope("http://example.com/", tt.match)
			require.NoError(t, err)

			assert.Equal(t, tt.want, s.InScope(tt.url))
		})
	}
}

func TestScope_InScope_site_from_www_seed(t *testing.T) {
	t.Parallel()

	s, err := crawl.NewScope("https://www.example.co.uk/", crawl.MatchSite)
	require.NoError(t, err)

	assert.True(t, s.InScope("https://example.co.uk/about"))
	assert.True(t, s.InScope("https://www.example.co.uk/"))
	assert.False(t, s.InScope("https://co.uk/"))
	assert.False(t, s.InScope("https://shop.example.co.uk/"))
}

func TestScope_InScope_allowed_hosts(t *testing.T) {
	t.Parallel()

	s, err := crawl.NewScope("http://example.com/", crawl.MatchExact, "static.example.net")
	require.NoError(t, err)

	assert.True(t, s.InScope("https://static.example.net/app.js"))
	assert.False(t, s.InScope("ftp://static.example.net/app.js"))
	assert.False(t, s.InScope("https://other.example.net/"))
}
