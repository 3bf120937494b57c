package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/encarte"
)

var (
	_ encarte.ProductExtractor = (*LoggingProductExtractor)(nil)
	_ encarte.ProductService   = (*LoggingProductService)(nil)
)

// LoggingProductExtractor wraps a ProductExtractor with logging.
type LoggingProductExtractor struct {
	next   encarte.ProductExtractor
	logger *slog.Logger
}

// NewLoggingProductExtractor creates a new LoggingProductExtractor.
func NewLoggingProductExtractor(next encarte.ProductExtractor, logger *slog.Logger) *LoggingProductExtractor {
	return &LoggingProductExtractor{next: next, logger: logger}
}

// ExtractProducts logs the number of products found and delegates to the
// wrapped extractor.
func (e *LoggingProductExtractor) ExtractProducts(ctx context.Context, doc encarte.Document, source string) (products []*encarte.Product, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract products",
			"source", source,
			"products", len(products),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractProducts(ctx, doc, source)
}

// LoggingProductService wraps a ProductService with debug logging.
type LoggingProductService struct {
	next   encarte.ProductService
	logger *slog.Logger
}

// NewLoggingProductService creates a new LoggingProductService.
func NewLoggingProductService(next encarte.ProductService, logger *slog.Logger) *LoggingProductService {
	return &LoggingProductService{next: next, logger: logger}
}

func (s *LoggingProductService) CreateProducts(ctx context.Context, products []*encarte.Product) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create products",
			"products", len(products),
			"created", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateProducts(ctx, products)
}

func (s *LoggingProductService) FindProducts(ctx context.Context, filter encarte.ProductFilter) (products []*encarte.Product, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find products",
			"results", len(products),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindProducts(ctx, filter)
}

func (s *LoggingProductService) FindSources(ctx context.Context) (sources []*encarte.SourceSummary, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find sources",
			"results", len(sources),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSources(ctx)
}

func (s *LoggingProductService) DeleteProductsBySource(ctx context.Context, source string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete products",
			"source", source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteProductsBySource(ctx, source)
}
