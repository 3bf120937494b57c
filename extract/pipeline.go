package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"unicode/utf8"

	"github.com/fwojciec/encarte"
	"golang.org/x/sync/errgroup"
)

// Ensure Pipeline implements encarte.ProductExtractor at compile time.
var _ encarte.ProductExtractor = (*Pipeline)(nil)

// Pipeline extracts products from whole documents. Pages are processed
// concurrently and merged in page order.
type Pipeline struct {
	lines       *LineExtractor
	logger      *slog.Logger
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTaxonomy sets the category taxonomy. Defaults to encarte.DefaultTaxonomy.
func WithTaxonomy(t *encarte.Taxonomy) Option {
	return func(p *Pipeline) {
		p.lines = NewLineExtractor(NewCategorizer(t))
	}
}

// WithLogger sets the logger for page and document failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithConcurrency sets how many pages are processed at once.
// Defaults to runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		p.concurrency = n
	}
}

// NewPipeline creates a new Pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.lines == nil {
		p.lines = NewLineExtractor(nil)
	}
	if p.concurrency <= 0 {
		p.concurrency = 1
	}
	return p
}

// mode selects which strategies run on a page.
type mode int

const (
	modeAll mode = iota
	modeTextOnly
)

func (m mode) String() string {
	if m == modeTextOnly {
		return "text-only"
	}
	return "tables+text"
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	products []*encarte.Product
	err      error
}

// ExtractProducts returns the deduplicated products of doc in page order.
//
// A page whose tables or text cannot be read contributes what the other
// strategy finds. When the document itself cannot be read, the products of
// the pages before the failure are kept and the document is read again once
// using text only. Neither case is reported as an error.
func (p *Pipeline) ExtractProducts(ctx context.Context, doc encarte.Document, source string) ([]*encarte.Product, error) {
	if source == "" {
		return nil, encarte.Errorf(encarte.EINVALID, "source required")
	}

	candidates, err := p.extractDocument(ctx, doc, source, modeAll)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Warn("document unreadable, retrying with text only",
			"source", source,
			"candidates", len(candidates),
			"err", err,
		)

		fallback, err := p.extractDocument(ctx, doc, source, modeTextOnly)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.logger.Error("document unreadable in text-only mode",
				"source", source,
				"candidates", len(candidates)+len(fallback),
				"err", err,
			)
		}
		candidates = append(candidates, fallback...)
	}

	return Dedupe(candidates), nil
}

// extractDocument runs the strategies over every page. On a document-level
// failure it returns the candidates of the pages before the first failing
// page together with the error.
func (p *Pipeline) extractDocument(ctx context.Context, doc encarte.Document, source string, m mode) ([]*encarte.Product, error) {
	n, err := safeCall(doc.PageCount)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}
	if n < 0 {
		return nil, encarte.Errorf(encarte.EINVALID, "page count: negative count %d", n)
	}

	results := make([]pageResult, n)

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i] = p.extractPage(doc, i, source, m)
			return nil
		})
	}
	_ = g.Wait()

	var candidates []*encarte.Product
	for i, r := range results {
		if r.err != nil {
			return candidates, fmt.Errorf("page %d: %w", i, r.err)
		}
		candidates = append(candidates, r.products...)
	}
	return candidates, nil
}

// extractPage runs the strategies on page i. Only a failure to obtain the
// page is returned as an error; strategy failures are logged and skipped.
func (p *Pipeline) extractPage(doc encarte.Document, i int, source string, m mode) pageResult {
	page, err := safeCall(func() (encarte.Page, error) { return doc.Page(i) })
	if err != nil {
		return pageResult{err: err}
	}
	if page == nil {
		return pageResult{err: encarte.Errorf(encarte.EINVALID, "page %d missing", i)}
	}

	var products []*encarte.Product
	if m == modeAll {
		tables, err := safeCall(func() ([]encarte.Table, error) { return page.Tables() })
		if err != nil {
			p.logger.Warn("page tables unreadable",
				"source", source,
				"page", i,
				"mode", m,
				"err", err,
			)
		} else {
			products = append(products, p.lines.ExtractTables(tables, source)...)
		}
	}

	text, err := safeCall(func() (string, error) { return page.Text() })
	if err != nil {
		p.logger.Warn("page text unreadable",
			"source", source,
			"page", i,
			"mode", m,
			"err", err,
		)
	} else {
		products = append(products, p.lines.ExtractText(text, source)...)
	}

	p.logger.Debug("page extracted",
		"source", source,
		"page", i,
		"mode", m,
		"candidates", len(products),
	)
	return pageResult{products: products}
}

// safeCall invokes fn, converting a panic into an error.
func safeCall[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = encarte.Errorf(encarte.EINTERNAL, "panic: %v", r)
		}
	}()
	return fn()
}

// Dedupe drops products with a name shorter than encarte.MinNameLength or a
// non-positive price and keeps the first product of each key, preserving
// order.
func Dedupe(candidates []*encarte.Product) []*encarte.Product {
	seen := make(map[encarte.ProductKey]bool, len(candidates))
	out := make([]*encarte.Product, 0, len(candidates))
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Name) < encarte.MinNameLength || c.Price <= 0 {
			continue
		}
		k := c.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
