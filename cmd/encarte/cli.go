package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Products encarte.ProductService
	Ingester *ingest.Ingester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract products from flyers and print them"`
	Ingest   IngestCmd   `cmd:"" help:"Extract products from flyers and store them"`
	Products ProductsCmd `cmd:"" help:"List stored products"`
	Sources  SourcesCmd  `cmd:"" help:"List sources with stored products"`
	Delete   DeleteCmd   `cmd:"" help:"Delete all stored products of a source"`
}

// LoadFlags configure how flyers are read. They are shared by extract and
// ingest.
type LoadFlags struct {
	Concurrency int    `short:"c" default:"4" help:"Inputs processed at once"`
	Clean       bool   `help:"Strip page chrome from HTML flyers before parsing"`
	Cleaner     string `default:"trafilatura" enum:"trafilatura,readability" help:"Boilerplate remover used by --clean"`
	Classify    bool   `help:"Ask Gemini to categorize products left in other (needs GEMINI_API_KEY)"`
	Browser     bool   `help:"Render URLs with headless Chrome instead of plain HTTP"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Inputs []string `arg:"" help:"Flyer files (.txt, .html) or URLs"`
	Source string   `short:"s" required:"" help:"Source label for the products"`
	JSON   bool     `help:"Print products as JSON"`
	Out    string   `short:"o" help:"Write products to a CSV file"`

	LoadFlags
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Source string   `arg:"" help:"Source label for the products"`
	Inputs []string `arg:"" help:"Flyer files (.txt, .html) or URLs"`

	LoadFlags
}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	Source     string `help:"Only products of this source"`
	Category   string `help:"Only products of this category"`
	Search     string `help:"Only products whose name contains this text"`
	Promotions bool   `help:"Only promotional products"`
	Limit      int    `default:"50" help:"Maximum number of products (0 for all)"`
	JSON       bool   `help:"Print products as JSON"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Source string `arg:"" help:"Source label"`
	Force  bool   `help:"Confirm deletion"`
}
