// Package extract implements the Extractor interface.
// It isolates the editor's HTML inside a larger page (a saved form, an
// exported ticket) by:
//  1. Removing elements that never carry description content (scripts, styles, forms)
//  2. Selecting the first element matching a CSS selector
//  3. Serializing that element's children, without the element itself
//
// With an empty selector the input is returned untouched, which is the normal
// case for fragments posted straight from the editor.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelectors are removed before selection.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"iframe", "video", "audio", "canvas",
	"button", "input", "select", "textarea",
}

// SelectorExtractor returns the inner HTML of the first match of Selector.
type SelectorExtractor struct {
	Selector string
}

// New creates a SelectorExtractor for the given CSS selector.
func New(selector string) *SelectorExtractor {
	return &SelectorExtractor{Selector: strings.TrimSpace(selector)}
}

// Extract returns the inner HTML of the selected container.
func (e *SelectorExtractor) Extract(page string) (string, error) {
	if e.Selector == "" {
		return page, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	content := doc.Find(e.Selector).First()
	if content.Length() == 0 {
		return "", fmt.Errorf("no element matches selector %q", e.Selector)
	}

	return innerHTML(content.Nodes[0])
}

// innerHTML renders the children of n, skipping comments.
func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode {
			continue
		}
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("serializing content: %w", err)
		}
	}
	return buf.String(), nil
}
