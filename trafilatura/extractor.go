// Package trafilatura strips navigation and footer boilerplate from flyer
// pages using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/encarte"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements encarte.ContentExtractor at compile time.
var _ encarte.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Tables are kept since flyers often list
// products in them.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			ExcludeTables:  false,
		},
	}
}

// Extract returns the main content of rawHTML. An empty content node yields
// an empty ContentHTML rather than an error.
func (e *Extractor) Extract(rawHTML string) (*encarte.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, encarte.Errorf(encarte.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &encarte.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
