package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
)

const progressURLWidth = 60

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	if deps.Pipeline == nil {
		return harvest.Errorf(harvest.EINTERNAL, "pipeline not configured")
	}

	progress := func(event crawl.ProgressEvent) {
		if c.Quiet {
			return
		}
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d articles\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Title)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] paywalled %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, progressURLWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, progressURLWidth), event.Error)
		}
	}

	report, err := deps.Pipeline.Run(deps.Ctx, progress)
	if report != nil {
		fmt.Fprintln(deps.Stdout, harvest.FormatReport(report))
	}
	if err != nil {
		if errors.Is(err, deps.Ctx.Err()) {
			fmt.Fprintln(deps.Stderr, "interrupted")
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		}
		return err
	}
	return nil
}
