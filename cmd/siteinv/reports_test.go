package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/siteinv"
	main "github.com/fwojciec/siteinv/cmd/siteinv"
	"github.com/fwojciec/siteinv/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists reports with ID, counts and seed", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportStore{
			FindReportsFn: func(_ context.Context, _ siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
				return []*siteinv.ReportSummary{
					{
						ID:         "rep-123",
						SeedURL:    "https://example.com/",
						TotalFiles: 42,
						ErrorCount: 3,
						FinishedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:          "rep-456",
						SeedURL:     "https://go.dev/",
						TotalFiles:  7,
						Interrupted: true,
						FinishedAt:  time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Reports: reports,
		}

		err := (&main.ReportsCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"rep-123  2025-01-15 10:00  42 files  3 errors  https://example.com/\n"+
				"rep-456  2025-01-14 09:30  7 files  0 errors  https://go.dev/  (interrupted)\n",
			stdout.String())
	})

	t.Run("passes seed and limit to the filter", func(t *testing.T) {
		t.Parallel()

		var got siteinv.ReportFilter
		reports := &mock.ReportStore{
			FindReportsFn: func(_ context.Context, filter siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Reports: reports,
		}

		err := (&main.ReportsCmd{Seed: "https://example.com/", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.SeedURL)
		assert.Equal(t, "https://example.com/", *got.SeedURL)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("shows hint when no reports exist", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportStore{
			FindReportsFn: func(_ context.Context, _ siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
				return []*siteinv.ReportSummary{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Reports: reports,
		}

		err := (&main.ReportsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No reports found")
		assert.Contains(t, stdout.String(), "siteinv crawl --save")
	})

	t.Run("returns error when listing fails", func(t *testing.T) {
		t.Parallel()

		reports := &mock.ReportStore{
			FindReportsFn: func(_ context.Context, _ siteinv.ReportFilter) ([]*siteinv.ReportSummary, error) {
				return nil, errors.New("disk error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Reports: reports,
		}

		err := (&main.ReportsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error.")
	})
}
