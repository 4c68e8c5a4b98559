package markdown_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *siteinv.Report {
	tree := &siteinv.PathNode{}
	tree.Insert("/files/guide.pdf")
	return &siteinv.Report{
		SeedURL:     "https://example.com/",
		ScopeDomain: "example.com",
		StartedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt:  time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC),
		TotalFiles:  2,
		Visited:     3,
		Categories:  []siteinv.Category{siteinv.CategoryWebpages, siteinv.CategoryPDFs},
		Counts: map[siteinv.Category]int{
			siteinv.CategoryWebpages: 1,
			siteinv.CategoryPDFs:     1,
		},
		Files: map[siteinv.Category][]string{
			siteinv.CategoryWebpages: {"https://example.com/"},
			siteinv.CategoryPDFs:     {"https://example.com/files/guide.pdf"},
		},
		Trees: map[siteinv.Category]*siteinv.PathNode{
			siteinv.CategoryWebpages: {},
			siteinv.CategoryPDFs:     tree,
		},
		Errors: []siteinv.CrawlError{
			{URL: "https://example.com/missing", Message: "HTTP 404 for https://example.com/missing"},
		},
	}
}

func TestReportWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("renders summary, categories, trees and errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := markdown.NewReportWriter().WriteReport(&buf, sampleReport())

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "# Site Inventory")
		assert.Contains(t, out, "`https://example.com/`")
		assert.Contains(t, out, "Complete")
		assert.Contains(t, out, "## Files by Type")
		assert.Contains(t, out, "### PDFs (1)")
		assert.Contains(t, out, "- `files`")
		assert.Contains(t, out, "  - `guide.pdf`")
		assert.Contains(t, out, "https://example.com/files/guide.pdf")
		assert.Contains(t, out, "## Errors")
		assert.Contains(t, out, "HTTP 404 for https://example.com/missing")
		assert.Contains(t, out, "mermaid")
	})

	t.Run("omits the chart when disabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := (&markdown.ReportWriter{}).WriteReport(&buf, sampleReport())

		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "mermaid")
	})

	t.Run("flags interrupted crawls", func(t *testing.T) {
		t.Parallel()

		report := sampleReport()
		report.Interrupted = true

		var buf bytes.Buffer
		err := markdown.NewReportWriter().WriteReport(&buf, report)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Interrupted (partial results)")
		assert.Contains(t, buf.String(), "Results are partial.")
	})

	t.Run("renders an empty report", func(t *testing.T) {
		t.Parallel()

		report := &siteinv.Report{
			SeedURL:    "not a url",
			Categories: []siteinv.Category{},
			Errors:     []siteinv.CrawlError{{URL: "not a url", Message: "invalid seed URL"}},
		}

		var buf bytes.Buffer
		err := markdown.NewReportWriter().WriteReport(&buf, report)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No files found.")
		assert.Contains(t, buf.String(), "invalid seed URL")
		assert.NotContains(t, buf.String(), "mermaid")
	})
}
