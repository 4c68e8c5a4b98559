package mock

import (
	"context"
	"io"

	"github.com/fwojciec/siteinv"
)

var _ siteinv.ReportStore = (*ReportStore)(nil)

// ReportStore is a mock implementation of siteinv.ReportStore.
type ReportStore struct {
	SaveReportFn     func(ctx context.Context, report *siteinv.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*siteinv.Report, error)
	FindReportsFn    func(ctx context.Context, filter siteinv.ReportFilter) ([]*siteinv.ReportSummary, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportStore) SaveReport(ctx context.Context, report *siteinv.Report) error {
	return s.SaveReportFn(ctx, report)
}

func (s *ReportStore) FindReportByID(ctx context.Context, id string) (*siteinv.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportStore) FindReports(ctx context.Context, filter siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportStore) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ siteinv.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of siteinv.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(w io.Writer, report *siteinv.Report) error
}

func (rw *ReportWriter) WriteReport(w io.Writer, report *siteinv.Report) error {
	return rw.WriteReportFn(w, report)
}
