// Package goquery implements siteinv.LinkExtractor using goquery CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/siteinv"
)

// linkSelector matches every element whose target becomes a crawl candidate.
// goquery returns the union in document order.
const linkSelector = "a[href], link[href], script[src], img[src]"

// Ensure LinkExtractor implements siteinv.LinkExtractor at compile time.
var _ siteinv.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts href and src targets from anchors, link elements,
// scripts, and images.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns link targets in document order, exactly as written.
// Empty and whitespace-only targets are skipped; resolution against baseURL,
// normalization, deduplication, and scope filtering are left to the caller.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteinv.Errorf(siteinv.EINVALID, "failed to parse HTML from %s: %v", baseURL, err)
	}

	var links []string
	doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		target, ok := linkTarget(sel)
		if !ok {
			return
		}
		links = append(links, target)
	})
	return links, nil
}

// linkTarget returns the attribute holding sel's target: href for anchors
// and link elements, src for scripts and images.
func linkTarget(sel *goquery.Selection) (string, bool) {
	attr := "href"
	if name := goquery.NodeName(sel); name == "script" || name == "img" {
		attr = "src"
	}
	v, ok := sel.Attr(attr)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
