package harvest

import (
	"fmt"
	"time"
)

// BatchReport summarizes one pipeline run.
type BatchReport struct {
	// Discovered is the number of article links found on the listing page.
	// After a canceled run it may exceed Succeeded+Skipped+Failed.
	Discovered int

	Succeeded int
	Skipped   int
	Failed    int

	// FailedURLs lists every article that failed, each exactly once, in
	// listing order.
	FailedURLs []ArticleReference

	// Records holds the successfully processed articles in listing order.
	Records []*Record

	Duration time.Duration
}

// Summary returns a one-line description of the run.
func (r *BatchReport) Summary() string {
	return fmt.Sprintf("discovered %d, succeeded %d, skipped %d (paywalled), failed %d in %s",
		r.Discovered, r.Succeeded, r.Skipped, r.Failed, r.Duration.Round(time.Millisecond))
}
