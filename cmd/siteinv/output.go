package main

import (
	"fmt"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/fs"
	"github.com/fwojciec/siteinv/markdown"
	"github.com/fwojciec/siteinv/yaml"
)

// newReportWriter returns the writer for a --format value.
func newReportWriter(format string) (siteinv.ReportWriter, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "markdown":
		return markdown.NewReportWriter(), nil
	case "yaml":
		return yaml.NewReportWriter(), nil
	default:
		return nil, siteinv.Errorf(siteinv.EINVALID, "unknown format %q", format)
	}
}

// writeReport renders report to stdout, or atomically to path when set.
func writeReport(deps *Dependencies, path string, rw siteinv.ReportWriter, report *siteinv.Report) error {
	if path == "" {
		return rw.WriteReport(deps.Stdout, report)
	}
	if err := fs.WriteReport(path, rw, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", path, err)
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", path)
	return nil
}
