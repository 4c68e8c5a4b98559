package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/siteinv"
)

// Ensure LoggingFetcher implements siteinv.Fetcher.
var _ siteinv.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   siteinv.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next siteinv.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *siteinv.Response, err error) {
	defer func(begin time.Time) {
		var (
			bytes       int
			contentType string
		)
		if resp != nil {
			bytes = len(resp.Body)
			contentType = resp.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", bytes,
			"type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
