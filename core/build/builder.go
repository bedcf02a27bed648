// Package build folds normalized text into ADF paragraphs.
//
// The fold walks the text line by line with a single piece of state, the
// pending text buffer. Consecutive plain lines accumulate in the buffer; a
// blank line or a line carrying a URL closes it as a paragraph. A line that
// is exactly a URL becomes a paragraph holding one inline card, and a line
// with text around a URL becomes a mixed paragraph.
//
// Only the first URL found on a line is converted. Any further URLs on the
// same line stay literal text in the trailing fragment.
package build

import (
	"strings"

	"github.com/gaurav-prasanna/adfpipe/core/adf"
	"github.com/gaurav-prasanna/adfpipe/core/refs"
)

// builder is the fold state.
type builder struct {
	refs       refs.Refs
	buffer     string
	paragraphs []adf.Paragraph
}

// Paragraphs converts normalized text into paragraphs using the URLs in r.
func Paragraphs(text string, r refs.Refs) []adf.Paragraph {
	b := &builder{refs: r}
	for _, line := range strings.Split(text, "\n") {
		b.step(line)
	}
	b.flush()
	return b.paragraphs
}

func (b *builder) step(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		b.flush()
		return
	}

	if url, ok := exactMatch(trimmed, b.refs.Images); ok {
		b.emit(adf.NewParagraph(adf.InlineCard{URL: url}))
		return
	}
	if url, ok := exactMatch(trimmed, b.refs.Links); ok {
		b.emit(adf.NewParagraph(adf.InlineCard{URL: url}))
		return
	}

	if url, ok := firstContained(line, b.refs.Images); ok {
		b.emit(mixed(line, url))
		return
	}
	if url, ok := firstContained(line, b.refs.Links); ok {
		b.emit(mixed(line, url))
		return
	}

	if b.buffer == "" {
		b.buffer = line
	} else {
		b.buffer += "\n" + line
	}
}

// emit closes the pending buffer, then appends p.
func (b *builder) emit(p adf.Paragraph) {
	b.flush()
	b.paragraphs = append(b.paragraphs, p)
}

// flush turns a non-empty buffer into a text paragraph.
func (b *builder) flush() {
	if b.buffer == "" {
		return
	}
	b.paragraphs = append(b.paragraphs, adf.NewParagraph(adf.Text{Text: b.buffer}))
	b.buffer = ""
}

// mixed splits line around the first occurrence of url. Fragments are
// trimmed and dropped when empty.
func mixed(line, url string) adf.Paragraph {
	left, right, _ := strings.Cut(line, url)

	children := make([]adf.Inline, 0, 3)
	if left = strings.TrimSpace(left); left != "" {
		children = append(children, adf.Text{Text: left})
	}
	children = append(children, adf.InlineCard{URL: url})
	if right = strings.TrimSpace(right); right != "" {
		children = append(children, adf.Text{Text: right})
	}
	return adf.Paragraph{Content: children}
}

func exactMatch(line string, urls []string) (string, bool) {
	for _, u := range urls {
		if line == u {
			return u, true
		}
	}
	return "", false
}

// firstContained returns the first URL of urls, in list order, that occurs in
// line.
func firstContained(line string, urls []string) (string, bool) {
	for _, u := range urls {
		if strings.Contains(line, u) {
			return u, true
		}
	}
	return "", false
}
