package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/fs"
	"github.com/fwojciec/encarte/ingest"
)

// Run executes the extract command. Products are printed, or written to a
// CSV file with --out; nothing is stored.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	ing := *deps.Ingester
	ing.Products = nil
	if c.Concurrency > 0 {
		ing.Concurrency = c.Concurrency
	}

	res, err := ing.Ingest(deps.Ctx, c.Source, c.Inputs, func(event ingest.ProgressEvent) {
		if event.Type == ingest.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", event.Location, event.Error)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encarte.ErrorMessage(err))
		return err
	}
	if res.Failed > 0 && res.Failed == res.Inputs-res.Skipped {
		fmt.Fprintf(deps.Stderr, "error: no input could be read\n")
		return encarte.Errorf(encarte.EINVALID, "no input could be read")
	}

	switch {
	case c.Out != "":
		if err := fs.NewCSVWriter(c.Out).WriteProducts(deps.Ctx, res.Products); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", encarte.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d products to %s\n", len(res.Products), c.Out)
		return nil
	case c.JSON:
		return writeJSON(deps.Stdout, res.Products)
	default:
		writeProducts(deps.Stdout, res.Products)
		return nil
	}
}

// writeProducts prints one product per line: price, promotion marker,
// category, name and source.
func writeProducts(w io.Writer, products []*encarte.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	for _, p := range products {
		promo := " "
		if p.Promotion {
			promo = "*"
		}
		fmt.Fprintf(w, "%10s %s %-12s %s  (%s)\n", p.Price, promo, p.Category, p.Name, p.Source)
	}
}

func writeJSON(w io.Writer, products []*encarte.Product) error {
	if products == nil {
		products = []*encarte.Product{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(products)
}
