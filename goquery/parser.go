// Package goquery decodes HTML flyers into encarte documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/encarte"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultPageSelector matches the page containers of paginated flyer markup.
const DefaultPageSelector = "[data-page], .page"

// Ensure Parser implements encarte.DocumentParser at compile time.
var _ encarte.DocumentParser = (*Parser)(nil)

// Parser builds documents from flyer HTML. Each element matching the page
// selector is a page; markup without page containers is a single page.
type Parser struct {
	pageSelector string
	converter    encarte.Converter
}

// Option configures a Parser.
type Option func(*Parser)

// WithPageSelector sets the CSS selector for page containers.
func WithPageSelector(selector string) Option {
	return func(p *Parser) {
		p.pageSelector = selector
	}
}

// WithConverter renders page text through c instead of the built-in
// block-per-line walk.
func WithConverter(c encarte.Converter) Option {
	return func(p *Parser) {
		p.converter = c
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{pageSelector: DefaultPageSelector}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes rawHTML. Pages are located eagerly; their tables and text
// are read on demand.
func (p *Parser) Parse(rawHTML string) (encarte.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, encarte.Errorf(encarte.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, encarte.Errorf(encarte.EINVALID, "failed to parse HTML: %v", err)
	}

	// Nested page containers belong to their outermost page.
	pages := doc.Find(p.pageSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(p.pageSelector).Length() == 0
	})
	if pages.Length() == 0 {
		pages = doc.Find("body")
	}

	d := &document{}
	pages.Each(func(_ int, s *goquery.Selection) {
		d.pages = append(d.pages, &page{sel: s, converter: p.converter})
	})
	return d, nil
}

type document struct {
	pages []*page
}

func (d *document) PageCount() (int, error) {
	return len(d.pages), nil
}

func (d *document) Page(i int) (encarte.Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, encarte.Errorf(encarte.ENOTFOUND, "page %d not found", i)
	}
	return d.pages[i], nil
}

type page struct {
	sel       *goquery.Selection
	converter encarte.Converter
}

// Tables returns every table of the page. Rows keep their th and td cells
// in order with whitespace collapsed; rows without cells are dropped. Rows
// of a nested table belong to that table only.
func (p *page) Tables() ([]encarte.Table, error) {
	var tables []encarte.Table
	p.sel.Find("table").Each(func(_ int, t *goquery.Selection) {
		var table encarte.Table
		ownRows(t).Each(func(_ int, tr *goquery.Selection) {
			var row encarte.Row
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, collapseSpace(cell.Text()))
			})
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		})
		if len(table.Rows) > 0 {
			tables = append(tables, table)
		}
	})
	return tables, nil
}

// ownRows returns the rows of table t in document order, skipping rows of
// tables nested in its cells.
func ownRows(t *goquery.Selection) *goquery.Selection {
	rows := t.ChildrenFiltered("tr")
	t.ChildrenFiltered("thead, tbody, tfoot").Each(func(_ int, section *goquery.Selection) {
		rows = rows.AddSelection(section.ChildrenFiltered("tr"))
	})
	return rows
}

// Text returns the page text outside tables, one block per line.
func (p *page) Text() (string, error) {
	clone := p.sel.Clone()
	clone.Find("table").Remove()

	if p.converter != nil {
		h, err := goquery.OuterHtml(clone)
		if err != nil {
			return "", err
		}
		return p.converter.Convert(h)
	}

	var b strings.Builder
	for _, n := range clone.Nodes {
		writeBlocks(&b, n)
	}
	return normalizeLines(b.String()), nil
}

// writeBlocks writes the text under n, breaking lines at block elements.
// Newlines inside text nodes are source formatting and become spaces.
func writeBlocks(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}, n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head:
			return
		case atom.Br:
			b.WriteByte('\n')
			return
		}
	case html.CommentNode:
		return
	}

	block := blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeBlocks(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Ul: true,
	atom.Body: true,
}

// normalizeLines collapses whitespace inside lines and drops empty lines.
func normalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapseSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
