package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	rw, err := newReportWriter(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteinv.ErrorMessage(err))
		return err
	}

	if deps.Crawler == nil {
		return siteinv.Errorf(siteinv.EINTERNAL, "crawler not configured")
	}

	crawler := deps.Crawler
	crawler.Match = crawl.MatchMode(c.Scope)
	crawler.Allow = c.AllowHost
	if c.Concurrency > 0 {
		crawler.Concurrency = c.Concurrency
	}
	if c.Timeout > 0 {
		crawler.FetchTimeout = c.Timeout
	}
	if c.Retries > 0 {
		crawler.RetryDelays = crawl.RetryDelays(c.Retries)
	}
	crawler.Progress = progressPrinter(deps.Stderr)

	report := crawler.Crawl(deps.Ctx, c.URL, c.MaxPages)
	if report.Visited > 0 {
		fmt.Fprintf(deps.Stderr, "Visited %d pages (%s)\n", report.Visited, crawl.FormatBytes(crawl.TotalBytes(report.Resources)))
	}

	if c.Save {
		if deps.Reports == nil {
			return siteinv.Errorf(siteinv.EINTERNAL, "report store not configured")
		}
		if err := deps.Reports.SaveReport(deps.Ctx, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siteinv.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved report %s\n", report.ID)
	}

	return writeReport(deps, c.Output, rw, report)
}

// progressPrinter reports the crawl start, per-page failures and
// interruption to w.
func progressPrinter(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(w, "Crawling %s (up to %d pages)\n", event.URL, event.MaxPages)
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 80), event.Error)
		case crawl.ProgressInterrupted:
			fmt.Fprintf(w, "Interrupted after %d pages, reporting partial results\n", event.Visited)
		}
	}
}
