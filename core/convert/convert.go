// Package convert wires the converter stages together:
// normalize → extract references → build paragraphs → assemble document.
//
// This is the only place the stages are composed. Conversion is pure and
// total, so a Converter can be shared by any number of goroutines.
package convert

import (
	"github.com/gaurav-prasanna/adfpipe/core"
	"github.com/gaurav-prasanna/adfpipe/core/adf"
	"github.com/gaurav-prasanna/adfpipe/core/build"
	"github.com/gaurav-prasanna/adfpipe/core/normalize"
	"github.com/gaurav-prasanna/adfpipe/core/refs"
)

// Converter runs editor HTML through the conversion stages.
type Converter struct {
	normalizer core.Normalizer
}

// New creates a Converter using the wiki normalizer.
func New() *Converter {
	return &Converter{normalizer: normalize.New()}
}

// Run converts html and keeps every intermediate representation.
func (c *Converter) Run(html string) *core.Result {
	text := c.normalizer.Normalize(html)
	found := refs.Extract(text)
	paragraphs := build.Paragraphs(text, found)

	return &core.Result{
		HTML:     html,
		Text:     text,
		Refs:     found,
		Document: adf.NewDocument(paragraphs...),
	}
}

// Document converts html and returns only the document.
func (c *Converter) Document(html string) *adf.Document {
	return c.Run(html).Document
}

var std = New()

// ToADF converts editor HTML into an ADF document.
func ToADF(html string) *adf.Document {
	return std.Document(html)
}
