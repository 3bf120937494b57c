package mock

import "github.com/fwojciec/encarte"

var (
	_ encarte.Document       = (*Document)(nil)
	_ encarte.Page           = (*Page)(nil)
	_ encarte.DocumentParser = (*DocumentParser)(nil)
)

// Document is a mock implementation of encarte.Document.
type Document struct {
	PageCountFn func() (int, error)
	PageFn      func(i int) (encarte.Page, error)
}

func (d *Document) PageCount() (int, error) {
	return d.PageCountFn()
}

func (d *Document) Page(i int) (encarte.Page, error) {
	return d.PageFn(i)
}

// Page is a mock implementation of encarte.Page.
type Page struct {
	TablesFn func() ([]encarte.Table, error)
	TextFn   func() (string, error)
}

func (p *Page) Tables() ([]encarte.Table, error) {
	return p.TablesFn()
}

func (p *Page) Text() (string, error) {
	return p.TextFn()
}

// DocumentParser is a mock implementation of encarte.DocumentParser.
type DocumentParser struct {
	ParseFn func(content string) (encarte.Document, error)
}

func (p *DocumentParser) Parse(content string) (encarte.Document, error) {
	return p.ParseFn(content)
}
