package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/siteinv"
)

// Ensure LoggingReportStore implements siteinv.ReportStore.
var _ siteinv.ReportStore = (*LoggingReportStore)(nil)

// LoggingReportStore wraps a ReportStore with debug logging.
type LoggingReportStore struct {
	next   siteinv.ReportStore
	logger *slog.Logger
}

// NewLoggingReportStore creates a new LoggingReportStore.
func NewLoggingReportStore(next siteinv.ReportStore, logger *slog.Logger) *LoggingReportStore {
	return &LoggingReportStore{next: next, logger: logger}
}

// SaveReport delegates to the wrapped store and logs the assigned ID.
func (s *LoggingReportStore) SaveReport(ctx context.Context, report *siteinv.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save report",
			"id", report.ID,
			"seed", report.SeedURL,
			"files", report.TotalFiles,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveReport(ctx, report)
}

// FindReportByID delegates to the wrapped store and logs the lookup.
func (s *LoggingReportStore) FindReportByID(ctx context.Context, id string) (report *siteinv.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReportByID(ctx, id)
}

// FindReports delegates to the wrapped store and logs the result count.
func (s *LoggingReportStore) FindReports(ctx context.Context, filter siteinv.ReportFilter) (reports []*siteinv.ReportSummary, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find reports",
			"count", len(reports),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}

// DeleteReport delegates to the wrapped store and logs the deletion.
func (s *LoggingReportStore) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReport(ctx, id)
}
