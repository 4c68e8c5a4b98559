package main

import (
	"fmt"

	"github.com/fwojciec/siteinv"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rw, err := newReportWriter(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteinv.ErrorMessage(err))
		return err
	}

	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		if siteinv.ErrorCode(err) == siteinv.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'siteinv reports' to see saved reports.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siteinv.ErrorMessage(err))
		}
		return err
	}

	return writeReport(deps, c.Output, rw, report)
}
