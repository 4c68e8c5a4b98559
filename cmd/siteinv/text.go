package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/siteinv"
)

var _ siteinv.ReportWriter = (*TextWriter)(nil)

// TextWriter renders a report as the plain console summary: totals, files
// grouped by type with an indented path tree, and the error log.
type TextWriter struct{}

// WriteReport writes the console summary of report to w.
func (tw *TextWriter) WriteReport(w io.Writer, report *siteinv.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "\n=== Crawling Summary ===")
	fmt.Fprintf(bw, "Total files found: %d\n", report.TotalFiles)
	if report.Interrupted {
		fmt.Fprintf(bw, "Interrupted after %d pages; results are partial.\n", report.Visited)
	}

	fmt.Fprintln(bw, "\n=== Files by Type ===")
	for _, c := range report.Categories {
		fmt.Fprintf(bw, "%s: %d files\n", c, report.Counts[c])
		if tree := report.Trees[c]; tree != nil {
			tree.Walk(func(depth int, node *siteinv.PathNode) {
				fmt.Fprintf(bw, "  %s- %s/\n", strings.Repeat("   ", depth), node.Segment)
			})
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(bw, "\n=== Errors ===")
		for _, e := range report.Errors {
			fmt.Fprintf(bw, "Error crawling %s: %s\n", e.URL, e.Message)
		}
	}

	return bw.Flush()
}
