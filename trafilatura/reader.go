// Package trafilatura locates main page content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/pagesnap"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Reader implements pagesnap.Reader at compile time.
var _ pagesnap.Reader = (*Reader)(nil)

// Reader wraps go-trafilatura to find the main content of a page.
type Reader struct {
	pageURL *url.URL
}

// Option configures a Reader.
type Option func(*Reader)

// WithPageURL sets the page address used for metadata and link handling.
func WithPageURL(u *url.URL) Option {
	return func(r *Reader) {
		r.pageURL = u
	}
}

// NewReader creates a new Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read processes raw HTML and returns the main content.
func (r *Reader) Read(rawHTML string) (*pagesnap.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    r.pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagesnap.Article{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
