package mock

import (
	"context"

	"github.com/fwojciec/pagesnap"
)

var _ pagesnap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagesnap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagesnap.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagesnap.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
