package mock

import "github.com/fwojciec/siteinv"

var _ siteinv.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of siteinv.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
