// Package markdown renders crawl reports as Markdown using nao1215/markdown.
package markdown

import (
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/siteinv"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// Ensure ReportWriter implements siteinv.ReportWriter at compile time.
var _ siteinv.ReportWriter = (*ReportWriter)(nil)

const timeLayout = "2006-01-02 15:04:05 MST"

// ReportWriter renders a report as a Markdown document: a summary table, a
// per-category breakdown with path trees, and the error log.
type ReportWriter struct {
	// Chart adds a mermaid pie chart of files per category.
	Chart bool
}

// NewReportWriter creates a ReportWriter with the category chart enabled.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{Chart: true}
}

// WriteReport writes report to w.
func (rw *ReportWriter) WriteReport(w io.Writer, report *siteinv.Report) error {
	md := markdown.NewMarkdown(w)

	rw.writeHeader(md, report)
	rw.writeCategories(md, report)
	rw.writeErrors(md, report)
	rw.writeFooter(md)

	return md.Build()
}

func (rw *ReportWriter) writeHeader(md *markdown.Markdown, report *siteinv.Report) {
	md.H1("Site Inventory")
	md.PlainText("")

	rows := [][]string{
		{"Seed URL", "`" + report.SeedURL + "`"},
		{"Scope", "`" + report.ScopeDomain + "`"},
	}
	if !report.StartedAt.IsZero() {
		rows = append(rows, []string{"Started", report.StartedAt.Format(timeLayout)})
	}
	if !report.FinishedAt.IsZero() {
		rows = append(rows, []string{"Finished", report.FinishedAt.Format(timeLayout)})
	}
	rows = append(rows,
		[]string{"Pages Visited", strconv.Itoa(report.Visited)},
		[]string{"Total Files", strconv.Itoa(report.TotalFiles)},
		[]string{"Errors", strconv.Itoa(len(report.Errors))},
		[]string{"Status", statusText(report)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Interrupted {
		md.Warningf("The crawl was interrupted after %d pages. Results are partial.", report.Visited)
		md.PlainText("")
	}
}

func statusText(report *siteinv.Report) string {
	if report.Interrupted {
		return "Interrupted (partial results)"
	}
	return "Complete"
}

func (rw *ReportWriter) writeCategories(md *markdown.Markdown, report *siteinv.Report) {
	md.H2("Files by Type")
	md.PlainText("")

	if report.TotalFiles == 0 {
		md.PlainText("No files found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Categories)+1)
	for _, c := range report.Categories {
		rows = append(rows, []string{string(c), strconv.Itoa(report.Counts[c])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.TotalFiles) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Type", "Files"},
		Rows:   rows,
	})
	md.PlainText("")

	if rw.Chart {
		rw.writePieChart(md, report)
	}

	for _, c := range report.Categories {
		md.PlainText("### " + string(c) + " (" + strconv.Itoa(report.Counts[c]) + ")")
		md.PlainText("")
		if tree := report.Trees[c]; tree != nil && len(tree.Children) > 0 {
			md.PlainText(treeList(tree))
			md.PlainText("")
		}
		md.Details("URLs", strings.Join(report.Files[c], "\n"))
		md.PlainText("")
	}
}

func (rw *ReportWriter) writePieChart(md *markdown.Markdown, report *siteinv.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Files by Type"),
		piechart.WithShowData(true),
	)
	for _, c := range report.Categories {
		if n := report.Counts[c]; n > 0 {
			chart.LabelAndIntValue(string(c), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// treeList renders a path tree as a nested Markdown list.
func treeList(tree *siteinv.PathNode) string {
	var b strings.Builder
	tree.Walk(func(depth int, n *siteinv.PathNode) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- `")
		b.WriteString(n.Segment)
		b.WriteString("`\n")
	})
	return strings.TrimSuffix(b.String(), "\n")
}

func (rw *ReportWriter) writeErrors(md *markdown.Markdown, report *siteinv.Report) {
	md.H2("Errors")
	md.PlainText("")

	if len(report.Errors) == 0 {
		md.PlainText("No errors.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Errors))
	for i, e := range report.Errors {
		rows[i] = []string{"`" + e.URL + "`", strings.ReplaceAll(e.Message, "|", "\\|")}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (rw *ReportWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by siteinv*")
}
