package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/siteinv"
)

// Ensure LoggingLinkExtractor implements siteinv.LinkExtractor.
var _ siteinv.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging.
// Extraction failures are logged here; the crawl itself ignores them.
type LoggingLinkExtractor struct {
	next   siteinv.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next siteinv.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the outcome.
func (e *LoggingLinkExtractor) ExtractLinks(html string, baseURL string) (links []string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract links",
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(html, baseURL)
}
