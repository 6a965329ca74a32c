package pagesnap

// Page is a fetched document.
type Page struct {
	// URL is the address the document was loaded from after redirects.
	// Relative href and src values resolve against it unless the document
	// declares a <base href>.
	URL string

	// HTML is the serialized markup of the whole document.
	HTML string
}

// Validate returns an error if the page cannot be extracted.
func (p *Page) Validate() error {
	if p == nil {
		return Errorf(EINVALID, "page required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}
