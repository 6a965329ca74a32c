package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagesnap/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// body parses src and returns its <body> element.
func body(t *testing.T, src string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	b := find(doc)
	require.NotNil(t, b)
	return b
}

func TestInnerText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "collapses whitespace",
			html: "<span>  Hello \n\t world  </span>",
			want: "Hello world",
		},
		{
			name: "joins inline runs with a single space",
			html: "<span>Hello </span> <b> world</b>",
			want: "Hello world",
		},
		{
			name: "breaks lines between blocks",
			html: "<div>One</div>\n<div>Two</div>",
			want: "One\nTwo",
		},
		{
			name: "separates paragraphs with a blank line",
			html: "<p>One</p><p>Two</p>",
			want: "One\n\nTwo",
		},
		{
			name: "br breaks the line",
			html: "Line 1<br>Line 2",
			want: "Line 1\nLine 2",
		},
		{
			name: "skips scripts styles and hidden elements",
			html: `<script>var x = 1;</script><style>p{}</style><div hidden>secret</div><span>shown</span>`,
			want: "shown",
		},
		{
			name: "keeps preformatted whitespace",
			html: "<pre>a  b\n  c</pre>",
			want: "a  b\n  c",
		},
		{
			name: "tab separates table cells",
			html: "<table><tr><td>A</td><td>B</td></tr><tr><td>C</td><td>D</td></tr></table>",
			want: "A\tB\nC\tD",
		},
		{
			name: "drops leading and trailing breaks",
			html: "<div><div><p>Only</p></div></div>",
			want: "Only",
		},
		{
			name: "keeps non-breaking spaces",
			html: "A&nbsp;&nbsp;B",
			want: "A\u00a0\u00a0B",
		},
		{
			name: "collapses spaces around a non-breaking space",
			html: "A &nbsp; B",
			want: "A \u00a0 B",
		},
		{
			name: "keeps a paragraph holding only a non-breaking space",
			html: "<p>One</p><p><span>&nbsp;</span></p><p>Two</p>",
			want: "One\n\n\u00a0\n\nTwo",
		},
		{
			name: "empty body",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := goquery.InnerText(body(t, tt.html))

			assert.Equal(t, tt.want, got)
		})
	}
}
