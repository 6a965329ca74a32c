package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InnerText approximates HTMLElement.innerText for n without a layout engine.
// Whitespace collapses as in normal flow, block boxes start new lines,
// paragraphs are separated by a blank line, <br> breaks the line and table
// cells are tab separated. Content that is never rendered (script, style,
// template, head and elements with the hidden attribute) is skipped.
func InnerText(n *html.Node) string {
	w := &textWriter{atLineStart: true}
	w.walk(n, false)
	return w.b.String()
}

// textWriter accumulates rendered text, deferring collapsible spaces and
// required line breaks until the next visible character.
type textWriter struct {
	b           strings.Builder
	started     bool
	atLineStart bool
	space       bool
	breaks      int
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			w.literal(n.Data)
		} else {
			w.text(n.Data)
		}
		return
	case html.ElementNode:
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c, pre)
		}
		return
	default:
		return
	}

	if !rendered(n) {
		return
	}

	switch n.DataAtom {
	case atom.Br:
		w.literal("\n")
		return
	case atom.Pre, atom.Textarea, atom.Listing, atom.Plaintext:
		pre = true
	}

	breaks := requiredBreaks(n)
	w.lineBreak(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}
	w.lineBreak(breaks)

	if isCell(n) && nextCell(n) != nil {
		w.literal("\t")
	}
}

// text writes a run from normal flow, collapsing whitespace. Only ASCII
// whitespace collapses; U+00A0 is kept as written.
func (w *textWriter) text(s string) {
	collapsed := strings.Join(strings.FieldsFunc(s, isCollapsible), " ")
	if collapsed == "" {
		if s != "" && w.started && !w.atLineStart && w.breaks == 0 {
			w.space = true
		}
		return
	}
	if isSpace(s[0]) && w.started && !w.atLineStart && w.breaks == 0 {
		w.space = true
	}
	w.flushBreaks()
	if w.space && !w.atLineStart {
		w.b.WriteByte(' ')
	}
	w.space = false
	w.b.WriteString(collapsed)
	w.started = true
	w.atLineStart = false
	if isSpace(s[len(s)-1]) {
		w.space = true
	}
}

// literal writes s verbatim.
func (w *textWriter) literal(s string) {
	if s == "" {
		return
	}
	w.flushBreaks()
	if w.space && !w.atLineStart {
		w.b.WriteByte(' ')
	}
	w.space = false
	w.b.WriteString(s)
	w.started = true
	w.atLineStart = strings.HasSuffix(s, "\n")
}

// lineBreak requests at least n newlines before the next visible text.
// Pending breaks never produce leading or trailing newlines.
func (w *textWriter) lineBreak(n int) {
	if n == 0 {
		return
	}
	w.space = false
	if n > w.breaks {
		w.breaks = n
	}
}

func (w *textWriter) flushBreaks() {
	if w.breaks > 0 && w.started {
		n := w.breaks
		// A literal newline already ends the current line.
		if w.atLineStart && n > 0 {
			n--
		}
		w.b.WriteString(strings.Repeat("\n", n))
		w.atLineStart = true
	}
	w.breaks = 0
}

func isCollapsible(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// rendered reports whether an element produces any text.
func rendered(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Noscript,
		atom.Title, atom.Meta, atom.Link, atom.Iframe, atom.Object,
		atom.Video, atom.Audio, atom.Canvas, atom.Select, atom.Datalist:
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "hidden" {
			return false
		}
	}
	return true
}

// requiredBreaks is the number of line breaks around an element's content.
func requiredBreaks(n *html.Node) int {
	switch n.DataAtom {
	case atom.P:
		return 2
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Body,
		atom.Center, atom.Dd, atom.Details, atom.Dialog, atom.Dir, atom.Div,
		atom.Dl, atom.Dt, atom.Fieldset, atom.Figcaption, atom.Figure,
		atom.Footer, atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5,
		atom.H6, atom.Header, atom.Hgroup, atom.Hr, atom.Li, atom.Main,
		atom.Menu, atom.Nav, atom.Ol, atom.Pre, atom.Section, atom.Summary,
		atom.Table, atom.Caption, atom.Tr, atom.Ul, atom.Legend, atom.Html,
		atom.Listing, atom.Plaintext:
		return 1
	}
	return 0
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

func nextCell(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if isCell(s) {
			return s
		}
	}
	return nil
}
