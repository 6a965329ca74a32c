package mock

import "github.com/fwojciec/pagesnap"

var _ pagesnap.Reader = (*Reader)(nil)

// Reader is a mock implementation of pagesnap.Reader.
type Reader struct {
	ReadFn func(html string) (*pagesnap.Article, error)
}

func (r *Reader) Read(html string) (*pagesnap.Article, error) {
	return r.ReadFn(html)
}
