// Package core defines the pipeline interfaces for adfpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/gaurav-prasanna/adfpipe/core/adf"
	"github.com/gaurav-prasanna/adfpipe/core/refs"
)

// FetchResult holds the raw HTML read from a source.
type FetchResult struct {
	Source     string
	StatusCode int // 0 for stdin and files
	HTML       string
}

// Meta describes where a converted description came from.
type Meta struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Result is everything one conversion produced. Renderers pick the
// representation they need.
type Result struct {
	HTML     string
	Text     string
	Refs     refs.Refs
	Document *adf.Document
	Meta     Meta
}

// Fetcher reads raw HTML from stdin, a file or a URL.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor isolates the editor content inside a larger HTML page.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer reduces editor HTML to wiki-marked plain text. It never fails.
type Normalizer interface {
	Normalize(html string) string
}

// Renderer converts a conversion result into a final output format.
type Renderer interface {
	Render(res *Result) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}
