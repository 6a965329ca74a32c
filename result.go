package pagesnap

import (
	"bytes"
	"encoding/json"
)

// NotFound is substituted for a landmark when its selector matches nothing.
const NotFound = "Not found"

// DefaultArtifactName is the file name of the saved snapshot.
const DefaultArtifactName = "femibyjojo-extracted-content.json"

// ExtractionResult is the record assembled from a single read of a document.
// Field order matches the JSON key order of the saved artifact.
type ExtractionResult struct {
	Header      string    `json:"header"`
	Navigation  string    `json:"navigation"`
	MainContent string    `json:"mainContent"`
	Footer      string    `json:"footer"`
	AllSections []Section `json:"allSections"`
	AllText     string    `json:"allText"`
	Links       []Link    `json:"links"`
	Images      []Image   `json:"images"`
	Buttons     []Button  `json:"buttons"`
}

// Section is one element matching the structural section selector.
type Section struct {
	Index   int    `json:"index"`
	TagName string `json:"tagName"`
	ID      string `json:"id"`
	Classes string `json:"classes"`
	HTML    string `json:"html"`
}

// Link is an anchor element. Href is the resolved absolute URL.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Image is an img element. Src is the resolved absolute URL.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Button is an element matching the button selector.
type Button struct {
	Text    string `json:"text"`
	ID      string `json:"id"`
	Classes string `json:"classes"`
}

// NewExtractionResult returns a result with every landmark set to NotFound
// and every sequence empty.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		Header:      NotFound,
		Navigation:  NotFound,
		MainContent: NotFound,
		Footer:      NotFound,
		AllSections: []Section{},
		Links:       []Link{},
		Images:      []Image{},
		Buttons:     []Button{},
	}
}

// Encode serializes the result as JSON indented by two spaces.
// Markup is not HTML-escaped and no trailing newline is written, so the
// output is stable for a given document.
func Encode(r *ExtractionResult) ([]byte, error) {
	if r == nil {
		return nil, Errorf(EINVALID, "extraction result required")
	}

	// Nil sequences would encode as null.
	out := *r
	if out.AllSections == nil {
		out.AllSections = []Section{}
	}
	if out.Links == nil {
		out.Links = []Link{}
	}
	if out.Images == nil {
		out.Images = []Image{}
	}
	if out.Buttons == nil {
		out.Buttons = []Button{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 raw. encoding/json always
// escapes them, while JSON.stringify does not.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; bytes.HasPrefix(rest, []byte("u2028")) {
			out = append(out, "\u2028"...)
			i += 5
			continue
		} else if bytes.HasPrefix(rest, []byte("u2029")) {
			out = append(out, "\u2029"...)
			i += 5
			continue
		}
		// Keep the escape pair together so an escaped backslash is never
		// read as the start of another escape.
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
