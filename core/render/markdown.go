// Package render provides output renderers for the adfpipe pipeline.
// This file implements the Markdown renderer, for trackers that take
// Markdown descriptions instead of ADF.
package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/adfpipe/core"
)

// MarkdownRenderer converts the source HTML to Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the result's source HTML into Markdown. Images and links
// keep their URLs as Markdown image and link syntax.
func (r *MarkdownRenderer) Render(res *core.Result) ([]byte, error) {
	markdown, err := htmltomarkdown.ConvertString(res.HTML)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
