package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/mock"
	sislog "github.com/fwojciec/siteinv/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingReportStore_SaveReport(t *testing.T) {
	t.Parallel()

	t.Run("logs the assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ReportStore{
			SaveReportFn: func(_ context.Context, r *siteinv.Report) error {
				r.ID = "report-1"
				return nil
			},
		}

		store := sislog.NewLoggingReportStore(inner, logger)
		err := store.SaveReport(context.Background(), &siteinv.Report{SeedURL: "https://example.com/", TotalFiles: 3})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "save report")
		assert.Contains(t, output, "id=report-1")
		assert.Contains(t, output, "files=3")
	})
}

func TestLoggingReportStore_FindReportByID(t *testing.T) {
	t.Parallel()

	t.Run("logs not found errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ReportStore{
			FindReportByIDFn: func(_ context.Context, id string) (*siteinv.Report, error) {
				return nil, siteinv.Errorf(siteinv.ENOTFOUND, "report not found")
			},
		}

		store := sislog.NewLoggingReportStore(inner, logger)
		_, err := store.FindReportByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, siteinv.ENOTFOUND, siteinv.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "find report")
		assert.Contains(t, output, "id=missing")
		assert.Contains(t, output, "report not found")
	})
}

func TestLoggingReportStore_FindReports(t *testing.T) {
	t.Parallel()

	t.Run("logs the result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ReportStore{
			FindReportsFn: func(_ context.Context, _ siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
				return []*siteinv.ReportSummary{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		store := sislog.NewLoggingReportStore(inner, logger)
		reports, err := store.FindReports(context.Background(), siteinv.ReportFilter{})

		require.NoError(t, err)
		assert.Len(t, reports, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}
