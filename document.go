package encarte

import "strings"

// Document is a decoded flyer: an ordered sequence of pages.
// An error from either method means the document as a whole is unreadable.
type Document interface {
	PageCount() (int, error)
	Page(i int) (Page, error)
}

// Page exposes the tables and the running text of one flyer page.
// An error from either method affects only that page.
type Page interface {
	Tables() ([]Table, error)
	Text() (string, error)
}

// Row is an ordered sequence of cell texts. Empty cells are "".
type Row []string

// Table is a grid of rows detected on a page.
type Table struct {
	Rows []Row `json:"rows"`
}

// DocumentParser decodes raw flyer content into a Document.
type DocumentParser interface {
	Parse(content string) (Document, error)
}

// Ensure StaticDocument implements Document at compile time.
var _ Document = (*StaticDocument)(nil)

// StaticDocument is an in-memory Document.
type StaticDocument struct {
	Pages []*StaticPage
}

// PageCount returns the number of pages.
func (d *StaticDocument) PageCount() (int, error) {
	return len(d.Pages), nil
}

// Page returns page i. Returns ENOTFOUND if i is out of range.
func (d *StaticDocument) Page(i int) (Page, error) {
	if i < 0 || i >= len(d.Pages) {
		return nil, Errorf(ENOTFOUND, "page %d not found", i)
	}
	return d.Pages[i], nil
}

// StaticPage is an in-memory Page.
type StaticPage struct {
	TableList []Table
	Content   string
}

// Tables returns the page tables.
func (p *StaticPage) Tables() ([]Table, error) {
	return p.TableList, nil
}

// Text returns the page text.
func (p *StaticPage) Text() (string, error) {
	return p.Content, nil
}

// PageSeparator separates pages in plain-text flyers, as emitted by pdftotext.
const PageSeparator = "\f"

// ParsePlainText builds a Document from plain text. Pages are separated by
// form feeds; a trailing empty page is dropped. The document has no tables.
func ParsePlainText(text string) *StaticDocument {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, PageSeparator)
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	doc := &StaticDocument{Pages: make([]*StaticPage, 0, len(parts))}
	for _, p := range parts {
		doc.Pages = append(doc.Pages, &StaticPage{Content: p})
	}
	return doc
}

// PlainTextParser implements DocumentParser using ParsePlainText.
type PlainTextParser struct{}

// Parse never fails.
func (PlainTextParser) Parse(content string) (Document, error) {
	return ParsePlainText(content), nil
}
