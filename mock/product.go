package mock

import (
	"context"

	"github.com/fwojciec/encarte"
)

var (
	_ encarte.ProductService     = (*ProductService)(nil)
	_ encarte.ProductExtractor   = (*ProductExtractor)(nil)
	_ encarte.ProductWriter      = (*ProductWriter)(nil)
	_ encarte.CategoryClassifier = (*CategoryClassifier)(nil)
)

// ProductService is a mock implementation of encarte.ProductService.
type ProductService struct {
	CreateProductsFn         func(ctx context.Context, products []*encarte.Product) (int, error)
	FindProductsFn           func(ctx context.Context, filter encarte.ProductFilter) ([]*encarte.Product, error)
	FindSourcesFn            func(ctx context.Context) ([]*encarte.SourceSummary, error)
	DeleteProductsBySourceFn func(ctx context.Context, source string) error
}

func (s *ProductService) CreateProducts(ctx context.Context, products []*encarte.Product) (int, error) {
	return s.CreateProductsFn(ctx, products)
}

func (s *ProductService) FindProducts(ctx context.Context, filter encarte.ProductFilter) ([]*encarte.Product, error) {
	return s.FindProductsFn(ctx, filter)
}

func (s *ProductService) FindSources(ctx context.Context) ([]*encarte.SourceSummary, error) {
	return s.FindSourcesFn(ctx)
}

func (s *ProductService) DeleteProductsBySource(ctx context.Context, source string) error {
	return s.DeleteProductsBySourceFn(ctx, source)
}

// ProductExtractor is a mock implementation of encarte.ProductExtractor.
type ProductExtractor struct {
	ExtractProductsFn func(ctx context.Context, doc encarte.Document, source string) ([]*encarte.Product, error)
}

func (e *ProductExtractor) ExtractProducts(ctx context.Context, doc encarte.Document, source string) ([]*encarte.Product, error) {
	return e.ExtractProductsFn(ctx, doc, source)
}

// ProductWriter is a mock implementation of encarte.ProductWriter.
type ProductWriter struct {
	WriteProductsFn func(ctx context.Context, products []*encarte.Product) error
}

func (w *ProductWriter) WriteProducts(ctx context.Context, products []*encarte.Product) error {
	return w.WriteProductsFn(ctx, products)
}

// CategoryClassifier is a mock implementation of encarte.CategoryClassifier.
type CategoryClassifier struct {
	ClassifyFn func(ctx context.Context, name string, categories []encarte.Category) (encarte.Category, error)
}

func (c *CategoryClassifier) Classify(ctx context.Context, name string, categories []encarte.Category) (encarte.Category, error) {
	return c.ClassifyFn(ctx, name, categories)
}
