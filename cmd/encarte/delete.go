package main

import (
	"fmt"

	"github.com/fwojciec/encarte"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return encarte.Errorf(encarte.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Products.DeleteProductsBySource(deps.Ctx, c.Source); err != nil {
		if encarte.ErrorCode(err) == encarte.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'encarte sources' to see available sources.\n", c.Source)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", encarte.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted products of source %q\n", c.Source)
	return nil
}
