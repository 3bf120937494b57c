// Package ingest runs batches of flyers through extraction, optional
// category classification and storage.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/bloom"
	"github.com/fwojciec/encarte/extract"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs processed at once.
const DefaultConcurrency = 4

// Ingester extracts products from many inputs of one source.
type Ingester struct {
	Loader    *Loader
	Extractor encarte.ProductExtractor

	// Classifier, when set, is asked for a category for every product the
	// keyword taxonomy left in "other". Answers outside Taxonomy are ignored.
	Classifier encarte.CategoryClassifier
	Taxonomy   *encarte.Taxonomy

	// Products, when set, receives the merged products.
	Products encarte.ProductService

	// Limiter, when set, spaces out fetches per host.
	Limiter encarte.HostLimiter

	Concurrency int
	Logger      *slog.Logger
}

// Result holds the outcome of an ingest run.
type Result struct {
	Inputs    int
	Failed    int
	Skipped   int
	Extracted int
	Stored    int
	Products  []*encarte.Product
}

// ProgressEvent reports progress during an ingest run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Location  string
	Products  int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingest progress.
// It is always called from the goroutine running Ingest.
type ProgressFunc func(event ProgressEvent)

type inputResult struct {
	position int
	location string
	products []*encarte.Product
	err      error
}

// Ingest processes locations for source. A location that fails is reported
// and counted; it never aborts the batch. Repeated locations are skipped.
// Only cancellation and storage failures return an error.
func (i *Ingester) Ingest(ctx context.Context, source string, locations []string, progress ProgressFunc) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, encarte.Errorf(encarte.EINVALID, "source required")
	}
	if i.Loader == nil || i.Extractor == nil {
		return nil, encarte.Errorf(encarte.EINVALID, "ingester requires a loader and an extractor")
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{Inputs: len(locations)}

	seen := bloom.NewFilter(uint(len(locations)), bloom.DefaultFalsePositiveRate)
	var unique []string
	for _, loc := range locations {
		if seen.TestAndAdd(locationKey(loc)) {
			result.Skipped++
			progress(ProgressEvent{Type: ProgressSkipped, Location: loc})
			continue
		}
		unique = append(unique, loc)
	}

	total := len(unique)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan inputResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for pos, loc := range unique {
			g.Go(func() error {
				resultCh <- i.processInput(gctx, pos, loc, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]inputResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		ev := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Location:  r.location,
			Products:  len(r.products),
		}
		if r.err != nil {
			result.Failed++
			ev.Type = ProgressFailed
			ev.Error = r.err
			i.logger().Warn("input failed", "source", source, "location", r.location, "err", r.err)
		}
		progress(ev)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []*encarte.Product
	for _, r := range results {
		merged = append(merged, r.products...)
	}
	products := extract.Dedupe(merged)
	result.Extracted = len(products)

	if i.Classifier != nil {
		if err := i.classify(ctx, products); err != nil {
			return nil, err
		}
	}

	if i.Products != nil && len(products) > 0 {
		n, err := i.Products.CreateProducts(ctx, products)
		if err != nil {
			return nil, fmt.Errorf("store products: %w", err)
		}
		result.Stored = n
	}
	result.Products = products

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

func (i *Ingester) processInput(ctx context.Context, position int, location, source string) inputResult {
	r := inputResult{position: position, location: location}

	if u, ok := parseURL(location); ok && i.Limiter != nil {
		if err := i.Limiter.Wait(ctx, u.Host); err != nil {
			r.err = err
			return r
		}
	}

	doc, err := i.Loader.Load(ctx, location)
	if err != nil {
		r.err = err
		return r
	}

	products, err := i.Extractor.ExtractProducts(ctx, doc, source)
	if err != nil {
		r.err = err
		return r
	}
	r.products = products
	return r
}

// classify asks the classifier about every product in "other". Classifier
// errors leave the product in "other"; only cancellation is returned.
func (i *Ingester) classify(ctx context.Context, products []*encarte.Product) error {
	taxonomy := i.Taxonomy
	if taxonomy == nil {
		taxonomy = encarte.DefaultTaxonomy()
	}
	categories := taxonomy.Categories()

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, p := range products {
		if p.Category != encarte.CategoryOther {
			continue
		}
		g.Go(func() error {
			c, err := i.Classifier.Classify(gctx, p.Name, categories)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				i.logger().Warn("classification failed", "name", p.Name, "err", err)
				return nil
			}
			if taxonomy.Contains(c) {
				p.Category = c
			} else if c != encarte.CategoryOther {
				i.logger().Debug("classifier answer outside taxonomy", "name", p.Name, "answer", c)
			}
			return nil
		})
	}
	return g.Wait()
}

func (i *Ingester) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return i.Logger
}

// locationKey normalizes a location for duplicate detection: URLs lose
// their fragment and get a lower-case scheme and canonical host; paths are
// cleaned and made absolute when possible.
func locationKey(location string) string {
	if u, ok := parseURL(location); ok {
		v := *u
		v.Fragment = ""
		v.Scheme = strings.ToLower(v.Scheme)
		v.Host = canonicalHost(v.Host)
		return v.String()
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return filepath.Clean(location)
}
