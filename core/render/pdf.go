// Package render: PDF renderer.
// Lays out the ADF document with gofpdf: one block per paragraph, inline
// cards written as clickable links. Wiki markers stay as typed.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/adfpipe/core"
	"github.com/gaurav-prasanna/adfpipe/core/adf"
)

const lineHeight = 5

// PDFRenderer renders the converted document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the result's document into PDF bytes.
func (r *PDFRenderer) Render(res *core.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if res.Meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(res.Meta.Title), "", "L", false)
		pdf.Ln(2)
	}

	if res.Meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+res.Meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	for _, p := range res.Document.Content {
		renderParagraph(pdf, p, tr)
		pdf.Ln(lineHeight + 2)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderParagraph writes the spans of p as a flowing line. Spans are
// separated by a space since the builder trims them.
func renderParagraph(pdf *gofpdf.Fpdf, p adf.Paragraph, tr func(string) string) {
	for i, n := range p.Content {
		if i > 0 {
			pdf.Write(lineHeight, " ")
		}
		switch n := n.(type) {
		case adf.Text:
			pdf.SetFont("Helvetica", "", 10)
			pdf.Write(lineHeight, tr(n.Text))
		case adf.InlineCard:
			pdf.SetFont("Helvetica", "U", 10)
			pdf.SetTextColor(0, 82, 204)
			pdf.WriteLinkString(lineHeight, tr(n.URL), n.URL)
			pdf.SetTextColor(0, 0, 0)
		}
	}
}
