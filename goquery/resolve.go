package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// documentBase returns the URL relative references resolve against:
// the first <base href> resolved against the page URL, or the page URL.
func documentBase(doc *goquery.Document, pageURL *url.URL) *url.URL {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return pageURL
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return pageURL
	}
	return pageURL.ResolveReference(ref)
}

// resolveURL resolves href against base the way a browser serializes it.
// Unparseable values are returned unchanged.
func resolveURL(base *url.URL, href string) string {
	input := strings.NewReplacer("\t", "", "\n", "", "\r", "").Replace(strings.TrimSpace(href))
	ref, err := url.Parse(input)
	if err != nil {
		return href
	}
	resolved := base.ResolveReference(ref)

	special := isSpecialScheme(resolved.Scheme) && resolved.Opaque == ""
	if special {
		// Special schemes treat a backslash in the path like a slash.
		if head, tail := splitPath(input); strings.Contains(head, `\`) {
			input = strings.ReplaceAll(head, `\`, "/") + tail
			if ref, err = url.Parse(input); err != nil {
				return href
			}
			resolved = base.ResolveReference(ref)
		}
		resolved.Host = strings.ToLower(resolved.Host)
		// https://x.test serializes as https://x.test/
		if resolved.Host != "" && resolved.Path == "" {
			resolved.Path = "/"
			resolved.RawPath = ""
		}
	}

	query, hasQuery := resolved.RawQuery, resolved.ForceQuery || resolved.RawQuery != ""
	fragment, hasFragment := "", false
	if i := strings.IndexByte(input, '#'); i >= 0 {
		fragment, hasFragment = input[i+1:], true
	}
	resolved.RawQuery, resolved.ForceQuery = "", false
	resolved.Fragment, resolved.RawFragment = "", ""

	var b strings.Builder
	b.WriteString(resolved.String())
	if hasQuery {
		b.WriteByte('?')
		b.WriteString(percentEncode(query, func(c byte) bool {
			return queryEscape(c) || (special && c == '\'')
		}))
	}
	if hasFragment {
		b.WriteByte('#')
		b.WriteString(percentEncode(fragment, fragmentEscape))
	}
	return b.String()
}

// splitPath splits s before its query or fragment.
func splitPath(s string) (head, tail string) {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// percentEncode escapes the bytes selected by escape and every non-ASCII
// byte. Existing percent escapes are kept.
func percentEncode(s string, escape func(byte) bool) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x7f || escape(c) {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// queryEscape is the WHATWG query percent-encode set.
func queryEscape(c byte) bool {
	return c <= ' ' || c == '"' || c == '#' || c == '<' || c == '>'
}

// fragmentEscape is the WHATWG fragment percent-encode set.
func fragmentEscape(c byte) bool {
	return c <= ' ' || c == '"' || c == '<' || c == '>' || c == '`'
}

// isSpecialScheme reports whether scheme has hierarchical paths in the
// WHATWG URL standard.
func isSpecialScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "ws", "wss", "ftp", "file":
		return true
	}
	return false
}
