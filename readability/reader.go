// Package readability locates main page content with go-readability.
package readability

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/pagesnap"
	"github.com/go-shiori/go-readability"
)

// Ensure Reader implements pagesnap.Reader at compile time.
var _ pagesnap.Reader = (*Reader)(nil)

// Reader wraps go-readability to find the main content of a page.
type Reader struct {
	pageURL *url.URL
}

// Option configures a Reader.
type Option func(*Reader)

// WithPageURL sets the page address used to resolve relative links
// inside the located content.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), r.pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	return &pagesnap.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
