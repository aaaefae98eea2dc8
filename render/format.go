package render

import (
	"net/http"
	"strings"
)

// Format is the closed set of response encodings. Dispatch on it is always
// an exhaustive switch so a new format is a compile-time change.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatHTML:
		return "html"
	}
	return "unknown"
}

// ParseFormat maps a format query value to a Format. Unknown values report
// ok=false and callers fall back to JSON.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, true
	case "xml":
		return FormatXML, true
	case "html":
		return FormatHTML, true
	}
	return FormatJSON, false
}

// ResolveFormat picks the response format for a request. An explicit
// ?format= always wins. Without one, requests whose Accept header prefers
// text/html (browsers) get HTML; everything else gets JSON.
func ResolveFormat(r *http.Request) Format {
	if q := r.URL.Query().Get("format"); q != "" {
		f, _ := ParseFormat(q)
		return f
	}
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		return FormatHTML
	}
	return FormatJSON
}
