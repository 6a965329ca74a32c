package pagesnap

import "github.com/andybalholm/cascadia"

// Selectors is the set of CSS selectors queried on each run.
// Landmark selectors return the first match; the others return all matches
// in document order.
type Selectors struct {
	Header     string
	Navigation string
	Main       string
	Footer     string
	Sections   string
	Links      string
	Images     string
	Buttons    string
}

// DefaultSelectors returns the selectors for a Wix-built site.
func DefaultSelectors() Selectors {
	return Selectors{
		Header:     "#SITE_HEADER",
		Navigation: "nav",
		Main:       "#PAGES_CONTAINER",
		Footer:     "#SITE_FOOTER",
		Sections:   "section, [data-mesh-id], .s_",
		Links:      "a",
		Images:     "img",
		Buttons:    `button, [role="button"]`,
	}
}

// Validate returns an error if any selector is empty or fails to parse.
func (s Selectors) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"header", s.Header},
		{"navigation", s.Navigation},
		{"main", s.Main},
		{"footer", s.Footer},
		{"sections", s.Sections},
		{"links", s.Links},
		{"images", s.Images},
		{"buttons", s.Buttons},
	} {
		if f.value == "" {
			return Errorf(EINVALID, "%s selector required", f.name)
		}
		if _, err := cascadia.ParseGroup(f.value); err != nil {
			return Errorf(EINVALID, "invalid %s selector %q: %v", f.name, f.value, err)
		}
	}
	return nil
}
