package main

import (
	"fmt"

	"github.com/fwojciec/siteinv"
)

// Run executes the reports command.
func (c *ReportsCmd) Run(deps *Dependencies) error {
	filter := siteinv.ReportFilter{Limit: c.Limit}
	if c.Seed != "" {
		filter.SeedURL = &c.Seed
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteinv.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'siteinv crawl --save' to create one.")
		return nil
	}

	for _, r := range reports {
		status := ""
		if r.Interrupted {
			status = "  (interrupted)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d files  %d errors  %s%s\n",
			r.ID, r.FinishedAt.Format("2006-01-02 15:04"), r.TotalFiles, r.ErrorCount, r.SeedURL, status)
	}

	return nil
}
