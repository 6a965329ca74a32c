package mock

import "github.com/fwojciec/pagesnap"

var _ pagesnap.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagesnap.Extractor.
type Extractor struct {
	ExtractFn func(page *pagesnap.Page) (*pagesnap.ExtractionResult, error)
}

func (e *Extractor) Extract(page *pagesnap.Page) (*pagesnap.ExtractionResult, error) {
	return e.ExtractFn(page)
}
