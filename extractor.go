package pagesnap

// Extractor reads the snapshot record out of a document.
type Extractor interface {
	// Extract queries the page once and returns a freshly built result.
	// Landmarks that match nothing are set to NotFound.
	Extract(page *Page) (*ExtractionResult, error)
}
