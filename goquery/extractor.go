// Package goquery implements pagesnap.Extractor on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesnap"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagesnap.Extractor at compile time.
var _ pagesnap.Extractor = (*Extractor)(nil)

// Extractor builds an ExtractionResult by querying a parsed document.
// Extractor is safe for concurrent use.
type Extractor struct {
	selectors pagesnap.Selectors
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors replaces the default Wix selectors.
func WithSelectors(s pagesnap.Selectors) Option {
	return func(e *Extractor) {
		e.selectors = s
	}
}

// NewExtractor creates a new Extractor using pagesnap.DefaultSelectors
// unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		selectors: pagesnap.DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the page markup and reads every selector once.
func (e *Extractor) Extract(page *pagesnap.Page) (*pagesnap.ExtractionResult, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := e.selectors.Validate(); err != nil {
		return nil, err
	}

	pageURL, err := url.Parse(page.URL)
	if err != nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "failed to parse HTML: %v", err)
	}

	base := documentBase(doc, pageURL)
	s := e.selectors
	result := pagesnap.NewExtractionResult()

	if result.Header, err = landmark(doc, s.Header); err != nil {
		return nil, err
	}
	if result.Navigation, err = landmark(doc, s.Navigation); err != nil {
		return nil, err
	}
	if result.MainContent, err = landmark(doc, s.Main); err != nil {
		return nil, err
	}
	if result.Footer, err = landmark(doc, s.Footer); err != nil {
		return nil, err
	}

	var renderErr error
	doc.Find(s.Sections).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = err
			return false
		}
		result.AllSections = append(result.AllSections, pagesnap.Section{
			Index:   i,
			TagName: tagName(sel.Nodes[0]),
			ID:      attr(sel, "id"),
			Classes: attr(sel, "class"),
			HTML:    markup,
		})
		return true
	})
	if renderErr != nil {
		return nil, renderErr
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		result.AllText = InnerText(body.Nodes[0])
	}

	doc.Find(s.Links).Each(func(_ int, sel *goquery.Selection) {
		result.Links = append(result.Links, pagesnap.Link{
			Text: InnerText(sel.Nodes[0]),
			Href: resolveAttr(base, sel, "href"),
		})
	})

	doc.Find(s.Images).Each(func(_ int, sel *goquery.Selection) {
		result.Images = append(result.Images, pagesnap.Image{
			Src: resolveAttr(base, sel, "src"),
			Alt: attr(sel, "alt"),
		})
	})

	doc.Find(s.Buttons).Each(func(_ int, sel *goquery.Selection) {
		result.Buttons = append(result.Buttons, pagesnap.Button{
			Text:    InnerText(sel.Nodes[0]),
			ID:      attr(sel, "id"),
			Classes: attr(sel, "class"),
		})
	})

	return result, nil
}

// landmark returns the outer HTML of the first match, or NotFound.
func landmark(doc *goquery.Document, selector string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return pagesnap.NotFound, nil
	}
	return goquery.OuterHtml(sel)
}

// tagName mirrors Element.tagName: upper-case for HTML elements,
// unchanged for SVG and MathML.
func tagName(n *html.Node) string {
	if n.Namespace == "" {
		return strings.ToUpper(n.Data)
	}
	return n.Data
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return v
}

// resolveAttr mirrors the reflected URL properties (a.href, img.src):
// empty when the attribute is absent, the raw value when it cannot be
// parsed, and the absolute URL otherwise.
func resolveAttr(base *url.URL, sel *goquery.Selection, name string) string {
	v, ok := sel.Attr(name)
	if !ok {
		return ""
	}
	return resolveURL(base, v)
}
