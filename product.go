package encarte

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MinNameLength is the minimum number of characters in a product name.
const MinNameLength = 3

// Product represents one extracted product listing.
// ID and CreatedAt are assigned by storage; extraction never sets them.
type Product struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	Source    string    `json:"source"`
	Promotion bool      `json:"promotion"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(p.Name)) < MinNameLength {
		return Errorf(EINVALID, "product name must have at least %d characters", MinNameLength)
	}
	if !p.Price.Valid() {
		return Errorf(EINVALID, "product price %s out of range", p.Price)
	}
	if p.Source == "" {
		return Errorf(EINVALID, "product source required")
	}
	return nil
}

// ProductKey identifies a product for deduplication: the same name
// (case-insensitive), price and source denote the same listing.
type ProductKey struct {
	Name   string
	Price  Price
	Source string
}

// Key returns the deduplication key of the product.
func (p *Product) Key() ProductKey {
	return ProductKey{
		Name:   strings.ToLower(strings.TrimSpace(p.Name)),
		Price:  p.Price,
		Source: p.Source,
	}
}

// ProductExtractor turns a document into product listings.
type ProductExtractor interface {
	// ExtractProducts returns the deduplicated products found in doc,
	// in page order. Unreadable pages and documents yield fewer products,
	// not errors; only an invalid source or a canceled context fail.
	ExtractProducts(ctx context.Context, doc Document, source string) ([]*Product, error)
}

// ProductService represents a service for managing stored products.
type ProductService interface {
	// CreateProducts stores products, skipping ones already stored under
	// the same key. Returns the number of products inserted.
	CreateProducts(ctx context.Context, products []*Product) (int, error)

	// FindProducts retrieves products matching the filter.
	FindProducts(ctx context.Context, filter ProductFilter) ([]*Product, error)

	// FindSources lists the sources that have stored products.
	FindSources(ctx context.Context) ([]*SourceSummary, error)

	// DeleteProductsBySource removes all products of a source.
	// Returns ENOTFOUND if the source has no products.
	DeleteProductsBySource(ctx context.Context, source string) error
}

// ProductFilter represents a filter for FindProducts.
type ProductFilter struct {
	Source    *string   `json:"source"`
	Category  *Category `json:"category"`
	Search    *string   `json:"search"`
	Promotion *bool     `json:"promotion"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceSummary describes the stored products of one source.
type SourceSummary struct {
	Source   string `json:"source"`
	Products int    `json:"products"`
}

// ProductWriter writes extracted products to an output.
type ProductWriter interface {
	WriteProducts(ctx context.Context, products []*Product) error
}

// CategoryClassifier assigns one of the given categories to a product name.
// Implementations return CategoryOther when none applies.
type CategoryClassifier interface {
	Classify(ctx context.Context, name string, categories []Category) (Category, error)
}
