package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	if deps.Records == nil {
		err := harvest.Errorf(harvest.EINVALID, "no knowledge base configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	filter := harvest.RecordFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Category != "" {
		category := harvest.Category(c.Category)
		filter.Category = &category
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found")
		return nil
	}

	for i, r := range records {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintln(deps.Stdout, harvest.FormatRecord(r))
	}
	return nil
}
