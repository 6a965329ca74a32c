package pagesnap

import "context"

// Fetcher retrieves a document from a URL.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch loads the URL, waits until the document is ready,
	// and returns its markup exactly once.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
