// Package fs exports products to files.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/encarte"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"name", "price", "source", "promotion", "category"}

// Ensure CSVWriter implements encarte.ProductWriter at compile time.
var _ encarte.ProductWriter = (*CSVWriter)(nil)

// CSVWriter writes products to a CSV file. The file is written to a
// temporary sibling and renamed into place, so a failed export never
// leaves a truncated file behind.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter for path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteProducts replaces the file at the writer's path with products.
func (w *CSVWriter) WriteProducts(ctx context.Context, products []*encarte.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, products); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}

// WriteCSV writes the header and one row per product to w.
// Prices are written with two decimals and a dot separator.
func WriteCSV(w io.Writer, products []*encarte.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i, p := range products {
		if p == nil {
			return encarte.Errorf(encarte.EINVALID, "product %d is nil", i)
		}
		row := []string{
			p.Name,
			p.Price.String(),
			p.Source,
			strconv.FormatBool(p.Promotion),
			string(p.Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write product %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
