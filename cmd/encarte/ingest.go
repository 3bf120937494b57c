package main

import (
	"fmt"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	ing := *deps.Ingester
	ing.Products = deps.Products
	if c.Concurrency > 0 {
		ing.Concurrency = c.Concurrency
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Reading %d inputs\n", event.Total)
		case ingest.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d products\n", event.Completed, event.Total, event.Location, event.Products)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: failed: %s\n", event.Completed, event.Total, event.Location, event.Error)
		case ingest.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skipped duplicate input %s\n", event.Location)
		}
	}

	res, err := ing.Ingest(deps.Ctx, c.Source, c.Inputs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encarte.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d new of %d products for %q (%d failed, %d skipped)\n",
		res.Stored, res.Extracted, c.Source, res.Failed, res.Skipped)
	return nil
}
