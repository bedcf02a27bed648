// Package adf models the subset of the Atlassian Document Format that the
// converter emits: a document of paragraphs whose children are text spans and
// inline cards.
//
// The JSON encoding is exact. Text nodes always carry a "text" key (even when
// empty) and paragraphs always carry a "content" array, because the issue
// tracker rejects documents that omit either.
package adf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Node type names as they appear on the wire.
const (
	TypeDoc        = "doc"
	TypeParagraph  = "paragraph"
	TypeText       = "text"
	TypeInlineCard = "inlineCard"
)

// Version is the only ADF version the tracker accepts.
const Version = 1

// Document is the top-level ADF envelope.
type Document struct {
	Content []Paragraph
}

// Paragraph is a block node holding inline children.
type Paragraph struct {
	Content []Inline
}

// Inline is implemented by the node types allowed inside a paragraph.
type Inline interface {
	inline()
	json.Marshaler
}

// Text is a plain text span.
type Text struct {
	Text string
}

// InlineCard is a bare URL that the tracker renders as a link card.
type InlineCard struct {
	URL string
}

func (Text) inline()       {}
func (InlineCard) inline() {}

// NewDocument assembles paragraphs into a document. An empty list yields a
// single paragraph holding one empty text span, so Content is never empty.
func NewDocument(paragraphs ...Paragraph) *Document {
	if len(paragraphs) == 0 {
		return &Document{Content: []Paragraph{NewParagraph(Text{})}}
	}
	content := make([]Paragraph, len(paragraphs))
	copy(content, paragraphs)
	return &Document{Content: content}
}

// NewParagraph builds a paragraph from inline nodes.
func NewParagraph(children ...Inline) Paragraph {
	content := make([]Inline, len(children))
	copy(content, children)
	return Paragraph{Content: content}
}

// PlainText flattens the document back to text: paragraphs separated by a
// blank line, inline cards written as their URL.
func (d *Document) PlainText() string {
	var b strings.Builder
	for i, p := range d.Content {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p.PlainText())
	}
	return b.String()
}

// PlainText joins the paragraph's spans. Spans next to a card are separated by
// a space since the builder trims them.
func (p Paragraph) PlainText() string {
	parts := make([]string, 0, len(p.Content))
	for _, n := range p.Content {
		switch n := n.(type) {
		case Text:
			parts = append(parts, n.Text)
		case InlineCard:
			parts = append(parts, n.URL)
		}
	}
	return strings.Join(parts, " ")
}

// --- JSON encoding ---

type wireDoc struct {
	Type    string      `json:"type"`
	Version int         `json:"version"`
	Content []Paragraph `json:"content"`
}

type wireParagraph struct {
	Type    string   `json:"type"`
	Content []Inline `json:"content"`
}

type wireText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireCardAttrs struct {
	URL string `json:"url"`
}

type wireCard struct {
	Type  string        `json:"type"`
	Attrs wireCardAttrs `json:"attrs"`
}

// MarshalJSON encodes the document envelope.
func (d Document) MarshalJSON() ([]byte, error) {
	content := d.Content
	if content == nil {
		content = []Paragraph{}
	}
	return marshal(wireDoc{Type: TypeDoc, Version: Version, Content: content})
}

// MarshalJSON encodes a paragraph node.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	content := p.Content
	if content == nil {
		content = []Inline{}
	}
	return marshal(wireParagraph{Type: TypeParagraph, Content: content})
}

// MarshalJSON encodes a text node.
func (t Text) MarshalJSON() ([]byte, error) {
	return marshal(wireText{Type: TypeText, Text: t.Text})
}

// MarshalJSON encodes an inlineCard node.
func (c InlineCard) MarshalJSON() ([]byte, error) {
	return marshal(wireCard{Type: TypeInlineCard, Attrs: wireCardAttrs{URL: c.URL}})
}

// marshal encodes v without HTML escaping so text spans stay readable. An
// enclosing json.Marshal still escapes them when it compacts the output.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// URLs returns the URL of every inline card, in document order.
func (d *Document) URLs() []string {
	var urls []string
	for _, p := range d.Content {
		for _, n := range p.Content {
			if c, ok := n.(InlineCard); ok {
				urls = append(urls, c.URL)
			}
		}
	}
	return urls
}

// --- JSON decoding ---

type rawNode struct {
	Type    string            `json:"type"`
	Version int               `json:"version"`
	Text    string            `json:"text"`
	Attrs   wireCardAttrs     `json:"attrs"`
	Content []json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes a document previously produced by MarshalJSON.
// Unknown node types are rejected rather than dropped.
func (d *Document) UnmarshalJSON(data []byte) error {
	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if root.Type != TypeDoc {
		return fmt.Errorf("unexpected root node type %q", root.Type)
	}
	if root.Version != Version {
		return fmt.Errorf("unsupported document version %d", root.Version)
	}

	paragraphs := make([]Paragraph, 0, len(root.Content))
	for i, raw := range root.Content {
		var p Paragraph
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
		paragraphs = append(paragraphs, p)
	}
	d.Content = paragraphs
	return nil
}

// UnmarshalJSON decodes a paragraph and its inline children.
func (p *Paragraph) UnmarshalJSON(data []byte) error {
	var node rawNode
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}
	if node.Type != TypeParagraph {
		return fmt.Errorf("unexpected block node type %q", node.Type)
	}

	children := make([]Inline, 0, len(node.Content))
	for i, raw := range node.Content {
		var child rawNode
		if err := json.Unmarshal(raw, &child); err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
		switch child.Type {
		case TypeText:
			children = append(children, Text{Text: child.Text})
		case TypeInlineCard:
			children = append(children, InlineCard{URL: child.Attrs.URL})
		default:
			return fmt.Errorf("content[%d]: unexpected inline node type %q", i, child.Type)
		}
	}
	p.Content = children
	return nil
}
