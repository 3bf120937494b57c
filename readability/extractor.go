// Package readability strips page chrome from flyer HTML using go-readability.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/encarte"
	"github.com/go-shiori/go-readability"
)

var _ encarte.ContentExtractor = (*Extractor)(nil)

// Extractor keeps the main content of a flyer page. Class attributes
// survive cleaning so page selectors such as ".page" still split the
// cleaned HTML into flyer pages.
type Extractor struct {
	parser readability.Parser
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	parser := readability.NewParser()
	parser.KeepClasses = true
	return &Extractor{parser: parser}
}

// Extract returns the title and main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*encarte.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, encarte.Errorf(encarte.EINVALID, "empty HTML input")
	}

	// Parse keeps per-document state on the parser.
	parser := e.parser
	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &encarte.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
