package fetcher

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page. Extraction helpers never fail: a selector
// that matches nothing yields the zero or default value.
type Document struct {
	Selection
	URL string
}

// Selection scopes the extraction helpers to part of a document, e.g. a table row.
type Selection struct {
	sel *goquery.Selection
}

func NewDocument(sourceURL string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{Selection: Selection{sel: doc.Selection}, URL: sourceURL}, nil
}

func NewDocumentFromBytes(sourceURL string, body []byte) (*Document, error) {
	return NewDocument(sourceURL, bytes.NewReader(body))
}

func (s Selection) Find(selector string) Selection {
	if s.sel == nil {
		return Selection{}
	}
	return Selection{sel: s.sel.Find(selector)}
}

func (s Selection) Len() int {
	if s.sel == nil {
		return 0
	}
	return s.sel.Length()
}

// Each calls fn for every element matching selector, in document order.
func (s Selection) Each(selector string, fn func(i int, item Selection)) {
	if s.sel == nil {
		return
	}
	s.sel.Find(selector).Each(func(i int, item *goquery.Selection) {
		fn(i, Selection{sel: item})
	})
}

// Text returns the trimmed text of the first match, or "" when nothing matches.
// An empty selector reads the selection itself.
func (s Selection) Text(selector string) string {
	return s.TextOr(selector, "")
}

func (s Selection) TextOr(selector, def string) string {
	match := s.first(selector)
	if match == nil {
		return def
	}
	return strings.TrimSpace(match.Text())
}

// Texts returns the trimmed text of every match in order. Empty strings are kept
// so positional columns stay aligned.
func (s Selection) Texts(selector string) []string {
	out := []string{}
	if s.sel == nil {
		return out
	}
	s.sel.Find(selector).Each(func(_ int, item *goquery.Selection) {
		out = append(out, strings.TrimSpace(item.Text()))
	})
	return out
}

// Attr returns attribute name of the first match, or "" when absent.
func (s Selection) Attr(selector, name string) string {
	return s.AttrOr(selector, name, "")
}

func (s Selection) AttrOr(selector, name, def string) string {
	match := s.first(selector)
	if match == nil {
		return def
	}
	value, ok := match.Attr(name)
	if !ok {
		return def
	}
	return strings.TrimSpace(value)
}

func (s Selection) first(selector string) *goquery.Selection {
	if s.sel == nil {
		return nil
	}
	match := s.sel
	if selector != "" {
		match = s.sel.Find(selector)
	}
	match = match.First()
	if match.Length() == 0 {
		return nil
	}
	return match
}
