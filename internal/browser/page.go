package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is an immutable snapshot of a rendered page. Queries never fail:
// a selector that matches nothing reports absence.
type Page struct {
	url  string
	html string
	doc  *goquery.Document
	shot func(path string) error
}

// NewPage builds a queryable page from rendered HTML.
func NewPage(url, html string) (*Page, error) {
	return newPage(url, html, nil)
}

func newPage(url, html string, shot func(path string) error) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return &Page{url: url, html: html, doc: doc, shot: shot}, nil
}

func (p *Page) URL() string {
	return p.url
}

func (p *Page) HTML() string {
	return p.html
}

// Elements returns all matches for a CSS selector, in document order.
func (p *Page) Elements(selector string) []Element {
	var elements []Element
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, Element{sel: sel})
	})
	return elements
}

// First returns the first match for a CSS selector.
func (p *Page) First(selector string) (Element, bool) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

// ElementContaining returns the first match whose text contains token.
func (p *Page) ElementContaining(selector, token string) (Element, bool) {
	var found Element
	ok := false
	p.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), token) {
			found = Element{sel: sel}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Screenshot writes a capture of the live page this snapshot came from.
// Only browser-backed pages support it.
func (p *Page) Screenshot(path string) error {
	if p.shot == nil {
		return fmt.Errorf("screenshot not supported for %s", p.url)
	}
	return p.shot(path)
}

type Element struct {
	sel *goquery.Selection
}

func (e Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e Element) Attr(name string) string {
	value, _ := e.sel.Attr(name)
	return value
}

// Find returns the first descendant matching a CSS selector.
func (e Element) Find(selector string) (Element, bool) {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}
