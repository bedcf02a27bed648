// Package render: wiki text renderer.
package render

import "github.com/gaurav-prasanna/adfpipe/core"

// TextRenderer writes the normalized wiki text (*bold*, _italic_, "* " items).
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the normalized text.
func (r *TextRenderer) Render(res *core.Result) ([]byte, error) {
	if res.Text == "" {
		return nil, nil
	}
	return []byte(res.Text + "\n"), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
