package main

import (
	"fmt"

	"github.com/fwojciec/encarte"
)

// Run executes the products command.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	filter := encarte.ProductFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Category != "" {
		category := encarte.Category(c.Category)
		filter.Category = &category
	}
	if c.Search != "" {
		filter.Search = &c.Search
	}
	if c.Promotions {
		promotion := true
		filter.Promotion = &promotion
	}

	products, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", encarte.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, products)
	}
	if len(products) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'encarte ingest' to add some.")
		return nil
	}
	writeProducts(deps.Stdout, products)
	return nil
}
