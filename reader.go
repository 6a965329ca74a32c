package pagesnap

// Article holds the main content located by a Reader.
type Article struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Reader locates the main content of a page heuristically.
// It is used when the main landmark selector matches nothing.
type Reader interface {
	Read(html string) (*Article, error)
}
