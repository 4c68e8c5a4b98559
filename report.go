package siteinv

import (
	"context"
	"io"
	"strings"
	"time"
)

// CrawlError is one entry of the append-only error log.
type CrawlError struct {
	URL     string `json:"url" yaml:"url"`
	Message string `json:"message" yaml:"message"`
}

// Resource describes one successfully fetched URL.
type Resource struct {
	URL         string   `json:"url" yaml:"url"`
	Category    Category `json:"category" yaml:"category"`
	ContentType string   `json:"contentType" yaml:"contentType"`
	Bytes       int      `json:"bytes" yaml:"bytes"`
	Hash        string   `json:"hash" yaml:"hash"`
}

// PathNode is one level of a per-category path tree. Children are keyed by
// segment name; their order is first-insertion order and only affects display.
type PathNode struct {
	Segment  string      `json:"segment" yaml:"segment"`
	Children []*PathNode `json:"children,omitempty" yaml:"children,omitempty"`

	index map[string]*PathNode
}

// Child returns the direct child named segment, or nil.
func (n *PathNode) Child(segment string) *PathNode {
	if n.index != nil {
		return n.index[segment]
	}
	for _, c := range n.Children {
		if c.Segment == segment {
			return c
		}
	}
	return nil
}

// Insert adds the segments of a URL path below n. Empty segments produced
// by leading, trailing, or doubled slashes are dropped.
func (n *PathNode) Insert(path string) {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		next := cur.Child(seg)
		if next == nil {
			next = &PathNode{Segment: seg}
			if cur.index == nil {
				cur.index = make(map[string]*PathNode)
				for _, c := range cur.Children {
					cur.index[c.Segment] = c
				}
			}
			cur.index[seg] = next
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}
}

// Walk calls fn for every node below n in depth-first, first-insertion
// order. Direct children of n have depth 0.
func (n *PathNode) Walk(fn func(depth int, node *PathNode)) {
	n.walk(0, fn)
}

func (n *PathNode) walk(depth int, fn func(int, *PathNode)) {
	for _, c := range n.Children {
		fn(depth, c)
		c.walk(depth+1, fn)
	}
}

// Report is the aggregated inventory produced by one crawl. It is the sole
// handoff from the crawl engine to any presentation layer.
type Report struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	SeedURL     string    `json:"seedUrl" yaml:"seedUrl"`
	ScopeDomain string    `json:"scopeDomain" yaml:"scopeDomain"`
	StartedAt   time.Time `json:"startedAt" yaml:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt" yaml:"finishedAt"`
	Interrupted bool      `json:"interrupted" yaml:"interrupted"`

	// TotalFiles is the sum of all category sizes.
	TotalFiles int `json:"totalFiles" yaml:"totalFiles"`

	// Visited counts every consumed URL, including failed fetches.
	Visited int `json:"visited" yaml:"visited"`

	// Categories lists category labels in first-seen order.
	Categories []Category             `json:"categories" yaml:"categories"`
	Counts     map[Category]int       `json:"counts" yaml:"counts"`
	Files      map[Category][]string  `json:"files" yaml:"files"`
	Trees      map[Category]*PathNode `json:"trees" yaml:"trees"`
	Resources  []Resource             `json:"resources,omitempty" yaml:"resources,omitempty"`
	Errors     []CrawlError           `json:"errors" yaml:"errors"`
}

// Validate returns an error if the report is internally inconsistent.
func (r *Report) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "report seed URL required")
	}
	total := 0
	for _, c := range r.Categories {
		if r.Counts[c] != len(r.Files[c]) {
			return Errorf(EINVALID, "report count for %q does not match file list", c)
		}
		total += len(r.Files[c])
	}
	if total != r.TotalFiles {
		return Errorf(EINVALID, "report total %d does not match category sum %d", r.TotalFiles, total)
	}
	return nil
}

// ReportSummary is a listing row for a saved report.
type ReportSummary struct {
	ID          string    `json:"id"`
	SeedURL     string    `json:"seedUrl"`
	TotalFiles  int       `json:"totalFiles"`
	ErrorCount  int       `json:"errorCount"`
	Interrupted bool      `json:"interrupted"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReportStore persists completed reports. Crawl state itself is never stored;
// a saved report is an output artifact, not a resumable checkpoint.
type ReportStore interface {
	// SaveReport stores the report and assigns its ID.
	SaveReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports lists saved reports, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*ReportSummary, error)

	// DeleteReport permanently removes a report.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportWriter renders a report to an output stream.
type ReportWriter interface {
	WriteReport(w io.Writer, report *Report) error
}
