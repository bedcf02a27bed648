// Package normalize implements the Normalizer interface.
// It reduces rich-text editor HTML to plain text with wiki-style markers
// (*bold*, _italic_, "* " list items, "h1. " headings) and newlines at block
// boundaries. This text is the canonical intermediate format the reference
// extractor and the document builder work on.
package normalize

import (
	"regexp"
	"strings"
)

// rule is one substitution of the normalization table.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules is applied in order, each over the output of the previous one.
// Image and anchor rules must run before tag stripping, otherwise the URL is
// lost together with the tag.
var rules = []rule{
	// URLs that only live in attributes.
	{regexp.MustCompile(`(?is)<img\b[^>]*?\ssrc\s*=\s*["']([^"']*)["'][^>]*>`), "$1"},
	{regexp.MustCompile(`(?is)<a\b[^>]*?\shref\s*=\s*["']([^"']*)["'][^>]*>.*?</a\s*>`), "$1"},

	// Block structure.
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>`), ""},
	{regexp.MustCompile(`(?i)</p\s*>`), "\n\n"},
	{regexp.MustCompile(`(?i)</?div(?:\s[^>]*)?>`), "\n"},
	{regexp.MustCompile(`(?i)<[uo]l(?:\s[^>]*)?>`), ""},
	{regexp.MustCompile(`(?i)</[uo]l\s*>`), "\n"},
	{regexp.MustCompile(`(?i)<li(?:\s[^>]*)?>`), "* "},
	{regexp.MustCompile(`(?i)</li\s*>`), "\n"},
	{regexp.MustCompile(`(?i)<h([1-3])(?:\s[^>]*)?>`), "h$1. "},
	{regexp.MustCompile(`(?i)</h[1-3]\s*>`), "\n"},

	// Inline emphasis.
	{regexp.MustCompile(`(?i)</?(?:strong|b)(?:\s[^>]*)?>`), "*"},
	{regexp.MustCompile(`(?i)</?(?:em|i)(?:\s[^>]*)?>`), "_"},

	// Everything else.
	{regexp.MustCompile(`<[^>]*>`), ""},
}

// entities decodes the escapes the editor emits. Single pass: "&amp;lt;"
// becomes "&lt;", not "<".
var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"\u00a0", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	// Re-serialized HTML writes quotes and carriage returns as numeric escapes.
	"&#34;", `"`,
	"&#13;", "\r",
	"&#39;", "'",
	"&apos;", "'",
)

var (
	carriageReturnRegex = regexp.MustCompile(`\r\n?`)
	spaceRunRegex       = regexp.MustCompile(`[ \t]+`)
	lineEdgeSpaceRegex  = regexp.MustCompile(` ?\n ?`)
	blankLinesRegex     = regexp.MustCompile(`\n{3,}`)
)

// WikiNormalizer converts editor HTML into wiki-marked plain text.
type WikiNormalizer struct{}

// New creates a WikiNormalizer.
func New() *WikiNormalizer {
	return &WikiNormalizer{}
}

// Normalize converts an HTML fragment into normalized text. It is total: any
// input, including the empty string and malformed markup, yields a result.
func (n *WikiNormalizer) Normalize(html string) string {
	return Normalize(html)
}

// Normalize is the package-level form of WikiNormalizer.Normalize.
func Normalize(html string) string {
	text := html
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	text = entities.Replace(text)
	return collapseWhitespace(text)
}

// collapseWhitespace squeezes runs of spaces and tabs, trims spaces at line
// edges and keeps at most one blank line between blocks.
func collapseWhitespace(text string) string {
	text = carriageReturnRegex.ReplaceAllString(text, "\n")
	text = spaceRunRegex.ReplaceAllString(text, " ")
	text = lineEdgeSpaceRegex.ReplaceAllString(text, "\n")
	text = blankLinesRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
