package fs

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesnap"
)

// Ensure Fetcher implements pagesnap.Fetcher at compile time.
var _ pagesnap.Fetcher = (*Fetcher)(nil)

// Fetcher reads a saved HTML document from disk, e.g. a page stored with
// the browser's "Save Page As" or a previous FULL PAGE HTML dump.
type Fetcher struct {
	// BaseURL, when set, replaces the file URL as the base for resolving
	// relative links, so a saved copy resolves like the live page.
	BaseURL string
}

// NewFetcher creates a new file Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// IsFileTarget reports whether target names a local file rather than a web URL.
func IsFileTarget(target string) bool {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "file://") {
		return true
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return false
	}
	_, err := os.Stat(target)
	return err == nil
}

// Fetch reads the file named by target, either a path or a file:// URL.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*pagesnap.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := filePath(target)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pagesnap.Errorf(pagesnap.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	pageURL := f.BaseURL
	if pageURL == "" {
		pageURL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
	}

	return &pagesnap.Page{URL: pageURL, HTML: string(data)}, nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

// filePath converts target into an absolute filesystem path.
func filePath(target string) (string, error) {
	if target == "" {
		return "", pagesnap.Errorf(pagesnap.EINVALID, "file path required")
	}
	if strings.HasPrefix(strings.ToLower(target), "file://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", pagesnap.Errorf(pagesnap.EINVALID, "invalid file URL: %v", err)
		}
		target = filepath.FromSlash(u.Path)
	}
	return filepath.Abs(target)
}
