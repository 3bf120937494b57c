package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/encarte"
)

// LineExtractor builds products from single lines of flyer text and from
// table rows.
type LineExtractor struct {
	categorizer *Categorizer
}

// NewLineExtractor creates a LineExtractor. A nil categorizer uses the
// default taxonomy.
func NewLineExtractor(c *Categorizer) *LineExtractor {
	if c == nil {
		c = NewCategorizer(nil)
	}
	return &LineExtractor{categorizer: c}
}

// Extract builds a product from one line. ok is false when the line has no
// price or the text left after removing prices does not yield a name.
func (e *LineExtractor) Extract(line, source string) (product *encarte.Product, ok bool) {
	price, ok := ParsePrice(line)
	if !ok {
		return nil, false
	}

	name := CleanName(StripPrices(line))
	if utf8.RuneCountInString(name) < encarte.MinNameLength {
		return nil, false
	}

	return e.newProduct(name, price, source, line), true
}

// ExtractTables builds products from table rows. A row is first read as one
// line; when that fails, the rightmost priced cell supplies the price and
// the first substantial cell to its left supplies the name.
func (e *LineExtractor) ExtractTables(tables []encarte.Table, source string) []*encarte.Product {
	var products []*encarte.Product
	for _, table := range tables {
		for _, row := range table.Rows {
			if len(row) < 2 {
				continue
			}
			rowText := strings.Join(row, " ")
			if p, ok := e.Extract(rowText, source); ok {
				products = append(products, p)
				continue
			}
			if p, ok := e.extractCells(row, rowText, source); ok {
				products = append(products, p)
			}
		}
	}
	return products
}

func (e *LineExtractor) extractCells(row encarte.Row, rowText, source string) (*encarte.Product, bool) {
	for i := len(row) - 1; i >= 0; i-- {
		price, ok := ParsePrice(row[i])
		if !ok {
			continue
		}
		for _, cell := range row[:i] {
			if utf8.RuneCountInString(cell) <= 2 {
				continue
			}
			name := CleanName(cell)
			if utf8.RuneCountInString(name) > 3 {
				return e.newProduct(name, price, source, rowText), true
			}
		}
		return nil, false
	}
	return nil, false
}

// ExtractText builds products from running text, one line at a time. A
// product line without a price is retried joined with the line after it,
// for flyers that print the price below the name.
func (e *LineExtractor) ExtractText(text, source string) []*encarte.Product {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var products []*encarte.Product
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !IsProductLine(line) {
			continue
		}
		if p, ok := e.Extract(line, source); ok {
			products = append(products, p)
			continue
		}
		if i+1 < len(lines) {
			merged := line + " " + strings.TrimSpace(lines[i+1])
			if p, ok := e.Extract(merged, source); ok {
				products = append(products, p)
				i++
			}
		}
	}
	return products
}

func (e *LineExtractor) newProduct(name string, price encarte.Price, source, context string) *encarte.Product {
	return &encarte.Product{
		Name:      name,
		Price:     price,
		Source:    source,
		Promotion: IsPromotionLine(context),
		Category:  e.categorizer.Categorize(name),
	}
}
