// Package render: JSON renderer.
// Writes the ADF document exactly as the issue tracker expects it in
// fields.description.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/adfpipe/core"
)

// JSONRenderer produces the ADF JSON document.
type JSONRenderer struct {
	Indent bool
}

// NewJSONRenderer creates a JSONRenderer that indents its output.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{Indent: true}
}

// Render encodes the result's document. Text is not HTML-escaped.
func (r *JSONRenderer) Render(res *core.Result) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res.Document); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
