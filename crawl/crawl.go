// Package crawl provides the breadth-first site crawl engine. It coordinates
// the frontier, fetching, link filtering, classification, and report
// aggregation for a single domain.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/siteinv"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	// DefaultMaxPages is the page budget used when none is given.
	DefaultMaxPages = 100

	// DefaultFetchTimeout bounds a single fetch attempt.
	DefaultFetchTimeout = 10 * time.Second

	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000

	// frontierFalsePositiveRate is the Bloom prefilter's false positive rate.
	frontierFalsePositiveRate = 0.01
)

// Crawler crawls one domain breadth-first and reports what it found.
// A Crawler holds configuration only; every call to Crawl owns its own
// frontier, inventory, and error log, so one Crawler may run several crawls
// concurrently.
type Crawler struct {
	Fetcher   siteinv.Fetcher
	Extractor siteinv.LinkExtractor

	// Match selects the scope policy; empty means MatchExact.
	Match MatchMode

	// Allow lists extra hosts accepted by every scope policy.
	Allow []string

	// Concurrency bounds in-flight fetches. Values below 2 give the
	// sequential baseline: one fetch at a time.
	Concurrency int

	// FetchTimeout bounds each fetch attempt. Defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration

	// RetryDelays enables in-visit retries. A URL is still visited once and a
	// failed visit is never re-queued. Nil means a single attempt.
	RetryDelays []time.Duration

	// Progress, if set, receives events from the coordinating goroutine.
	Progress ProgressFunc

	// NewFrontier, if set, creates the frontier for each crawl.
	// Defaults to an in-memory Frontier.
	NewFrontier func() siteinv.URLFrontier
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type     ProgressType
	Visited  int
	MaxPages int
	URL      string
	Category siteinv.Category
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressFailed
	ProgressInterrupted
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// visitResult holds the outcome of fetching a single URL.
type visitResult struct {
	url      string
	resp     *siteinv.Response
	links    []string
	err      error
	canceled bool
}

// crawlState is the mutable state of one crawl. Only the coordinating
// goroutine touches it.
type crawlState struct {
	scope     *Scope
	frontier  siteinv.URLFrontier
	inventory *Inventory
	errors    []siteinv.CrawlError
	maxPages  int
}

// Crawl visits URLs reachable from seedURL, breadth-first, until the
// frontier is empty, maxPages URLs have been visited, or ctx is canceled.
// A maxPages below 1 means DefaultMaxPages.
//
// Crawl never fails. A malformed seed produces an empty report with one
// error entry; fetch failures are recorded in the report's error log;
// cancellation yields the partial report with Interrupted set.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int) *siteinv.Report {
	startedAt := time.Now().UTC()
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}

	seed, scope, err := c.prepareSeed(seedURL)
	if err != nil {
		report := BuildReport(nil, []siteinv.CrawlError{{URL: seedURL, Message: err.Error()}})
		report.SeedURL = seedURL
		report.StartedAt = startedAt
		report.FinishedAt = time.Now().UTC()
		return report
	}

	st := &crawlState{
		scope:     scope,
		frontier:  c.newFrontier(),
		inventory: NewInventory(),
		maxPages:  maxPages,
	}
	st.frontier.Push(seed)

	c.notify(ProgressEvent{Type: ProgressStarted, URL: seed, MaxPages: maxPages})

	interrupted := false
	for {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		batch := c.nextBatch(st)
		if len(batch) == 0 {
			break
		}

		for _, res := range c.fetchBatch(ctx, batch) {
			if res.canceled {
				interrupted = true
				continue
			}
			c.fold(st, res)
		}
	}

	if interrupted {
		c.notify(ProgressEvent{Type: ProgressInterrupted, Visited: st.frontier.VisitedCount(), MaxPages: maxPages})
	}

	report := BuildReport(st.inventory, st.errors)
	report.SeedURL = seed
	report.ScopeDomain = scope.Domain
	report.StartedAt = startedAt
	report.FinishedAt = time.Now().UTC()
	report.Interrupted = interrupted
	report.Visited = st.frontier.VisitedCount()

	c.notify(ProgressEvent{Type: ProgressFinished, Visited: report.Visited, MaxPages: maxPages})
	return report
}

// prepareSeed normalizes the seed and derives the crawl scope from it.
func (c *Crawler) prepareSeed(seedURL string) (string, *Scope, error) {
	seed, err := NormalizeString(seedURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if scheme := strings.SplitN(seed, ":", 2)[0]; scheme != "http" && scheme != "https" {
		return "", nil, fmt.Errorf("invalid seed URL: %w: unsupported scheme %q", ErrInvalidURL, scheme)
	}
	scope, err := NewScope(seed, c.Match, c.Allow...)
	if err != nil {
		return "", nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	return seed, scope, nil
}

// nextBatch pops up to Concurrency URLs that have not been visited, marking
// each visited before it is fetched. The page budget is checked on every pop,
// so the visited count never exceeds maxPages.
func (c *Crawler) nextBatch(st *crawlState) []string {
	size := c.concurrency()
	batch := make([]string, 0, size)
	for len(batch) < size && st.frontier.HasCapacity(st.maxPages) {
		raw, ok := st.frontier.Pop()
		if !ok {
			break
		}
		u, err := NormalizeString(raw)
		if err != nil {
			continue
		}
		if !st.frontier.MarkVisited(u) {
			continue
		}
		batch = append(batch, u)
	}
	return batch
}

// fetchBatch fetches every URL in batch with at most Concurrency requests in
// flight. Results are returned in batch order so folding them preserves
// breadth-first discovery order.
func (c *Crawler) fetchBatch(ctx context.Context, batch []string) []visitResult {
	results := make([]visitResult, len(batch))
	if len(batch) == 1 {
		results[0] = c.visit(ctx, batch[0])
		return results
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency())
	for i, u := range batch {
		g.Go(func() error {
			results[i] = c.visit(ctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// visit fetches a single URL and, for HTML, extracts its raw link targets.
// It never touches crawl state.
func (c *Crawler) visit(ctx context.Context, u string) visitResult {
	result := visitResult{url: u}

	fetch := func(ctx context.Context, url string) (*siteinv.Response, error) {
		ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout())
		defer cancel()
		resp, err := c.Fetcher.Fetch(ctx, url)
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout after %s: %w", c.fetchTimeout(), err)
		}
		return resp, err
	}

	resp, err := FetchWithRetryDelays(ctx, u, fetch, nil, c.RetryDelays)
	if err != nil {
		result.err = err
		result.canceled = ctx.Err() != nil
		return result
	}
	result.resp = resp

	if resp.IsHTML() && c.Extractor != nil {
		links, err := c.Extractor.ExtractLinks(resp.Body, u)
		if err == nil {
			result.links = links
		}
	}
	return result
}

// fold applies one visit result to the crawl state.
func (c *Crawler) fold(st *crawlState, res visitResult) {
	if res.err != nil {
		st.errors = append(st.errors, siteinv.CrawlError{URL: res.url, Message: res.err.Error()})
		c.notify(ProgressEvent{
			Type:     ProgressFailed,
			Visited:  st.frontier.VisitedCount(),
			MaxPages: st.maxPages,
			URL:      res.url,
			Error:    res.err,
		})
		return
	}

	category := Classify(res.url)
	st.inventory.Add(siteinv.Resource{
		URL:         res.url,
		Category:    category,
		ContentType: res.resp.ContentType,
		Bytes:       len(res.resp.Body),
		Hash:        contentHash(res.resp.Body),
	})
	c.notify(ProgressEvent{
		Type:     ProgressVisited,
		Visited:  st.frontier.VisitedCount(),
		MaxPages: st.maxPages,
		URL:      res.url,
		Category: category,
	})

	if len(res.links) == 0 {
		return
	}
	base, err := url.Parse(res.url)
	if err != nil {
		return
	}
	for _, raw := range res.links {
		link, err := Normalize(base, raw)
		if err != nil {
			continue
		}
		if !st.scope.InScope(link) {
			continue
		}
		if st.frontier.Visited(link) {
			continue
		}
		st.frontier.Push(link)
	}
}

func (c *Crawler) newFrontier() siteinv.URLFrontier {
	if c.NewFrontier != nil {
		return c.NewFrontier()
	}
	return NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
}

func (c *Crawler) concurrency() int {
	if c.Concurrency < 1 {
		return 1
	}
	return c.Concurrency
}

func (c *Crawler) fetchTimeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return DefaultFetchTimeout
	}
	return c.FetchTimeout
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
