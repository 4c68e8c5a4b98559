// Package yaml renders crawl reports as YAML using gopkg.in/yaml.v3.
package yaml

import (
	"fmt"
	"io"

	"github.com/fwojciec/siteinv"
	"gopkg.in/yaml.v3"
)

// Ensure ReportWriter implements siteinv.ReportWriter at compile time.
var _ siteinv.ReportWriter = (*ReportWriter)(nil)

// ReportWriter encodes a report as a single YAML document.
type ReportWriter struct {
	// Resources includes the per-URL resource records (content type, size,
	// hash). They are omitted by default to keep the output readable.
	Resources bool
}

// NewReportWriter creates a ReportWriter that omits resource records.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteReport writes report to w.
func (rw *ReportWriter) WriteReport(w io.Writer, report *siteinv.Report) error {
	out := *report
	if !rw.Resources {
		out.Resources = nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// ReadReport decodes a report previously written by ReportWriter.
func ReadReport(r io.Reader) (*siteinv.Report, error) {
	var report siteinv.Report
	if err := yaml.NewDecoder(r).Decode(&report); err != nil {
		return nil, siteinv.Errorf(siteinv.EINVALID, "invalid report YAML: %v", err)
	}
	return &report, nil
}
