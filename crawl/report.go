package crawl

import (
	"net/url"

	"github.com/fwojciec/siteinv"
)

// Inventory is the classification map built during a crawl: category labels
// mapped to URLs in discovery order.
type Inventory struct {
	order     []siteinv.Category
	files     map[siteinv.Category][]string
	resources []siteinv.Resource
}

// NewInventory returns an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{files: make(map[siteinv.Category][]string)}
}

// Add appends a resource under its category.
func (inv *Inventory) Add(res siteinv.Resource) {
	if _, ok := inv.files[res.Category]; !ok {
		inv.order = append(inv.order, res.Category)
	}
	inv.files[res.Category] = append(inv.files[res.Category], res.URL)
	inv.resources = append(inv.resources, res)
}

// Categories returns category labels in first-seen order.
func (inv *Inventory) Categories() []siteinv.Category {
	return inv.order
}

// Files returns the URLs recorded under c.
func (inv *Inventory) Files(c siteinv.Category) []string {
	return inv.files[c]
}

// Len returns the number of recorded resources.
func (inv *Inventory) Len() int {
	return len(inv.resources)
}

// BuildReport aggregates an inventory and error log into a Report.
// Crawl metadata (seed, scope, timestamps) is left for the caller.
// A nil inventory yields an empty report.
func BuildReport(inv *Inventory, errs []siteinv.CrawlError) *siteinv.Report {
	r := &siteinv.Report{
		Categories: []siteinv.Category{},
		Counts:     make(map[siteinv.Category]int),
		Files:      make(map[siteinv.Category][]string),
		Trees:      make(map[siteinv.Category]*siteinv.PathNode),
		Errors:     append([]siteinv.CrawlError{}, errs...),
	}
	if inv == nil {
		return r
	}

	for _, c := range inv.order {
		files := append([]string(nil), inv.files[c]...)
		r.Categories = append(r.Categories, c)
		r.Files[c] = files
		r.Counts[c] = len(files)
		r.Trees[c] = BuildPathTree(files)
		r.TotalFiles += len(files)
	}
	r.Resources = append([]siteinv.Resource(nil), inv.resources...)
	return r
}

// BuildPathTree splits each URL path on "/" and nests the segments under an
// unnamed root. Unparseable URLs are skipped.
func BuildPathTree(urls []string) *siteinv.PathNode {
	root := &siteinv.PathNode{}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		root.Insert(u.Path)
	}
	return root
}
