package mock

import "github.com/fwojciec/encarte"

var (
	_ encarte.ContentExtractor = (*ContentExtractor)(nil)
	_ encarte.Converter        = (*Converter)(nil)
)

// ContentExtractor is a mock implementation of encarte.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*encarte.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*encarte.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of encarte.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
