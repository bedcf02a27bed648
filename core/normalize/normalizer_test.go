package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "plain text",
			input: "just text",
			want:  "just text",
		},
		{
			name:  "image keeps its src",
			input: `<p>See <img src="https://x.com/a.png" alt="A"></p>`,
			want:  "See https://x.com/a.png",
		},
		{
			name:  "image src wins over data-src",
			input: `<img data-src="https://x.com/lazy.png" src="https://x.com/real.png">`,
			want:  "https://x.com/real.png",
		},
		{
			name:  "anchor becomes its href",
			input: `<p>Visit <a href="https://example.com" target="_blank">our site</a> now</p>`,
			want:  "Visit https://example.com now",
		},
		{
			name:  "single quoted href",
			input: `<a href='https://example.com/x'>x</a>`,
			want:  "https://example.com/x",
		},
		{
			name:  "anchor label across lines",
			input: "<a href=\"https://example.com\">multi\nline</a>",
			want:  "https://example.com",
		},
		{
			name:  "bold and italic markers",
			input: `<strong>bold</strong> and <em>ital</em>`,
			want:  "*bold* and _ital_",
		},
		{
			name:  "short bold and italic tags",
			input: `<b>b</b> <i>i</i>`,
			want:  "*b* _i_",
		},
		{
			name:  "bullet list",
			input: `<ul><li>one</li><li>two</li></ul>`,
			want:  "* one\n* two",
		},
		{
			name:  "ordered list uses the same marker",
			input: `<ol><li>first</li><li>second</li></ol><p>after</p>`,
			want:  "* first\n* second\n\nafter",
		},
		{
			name:  "headings",
			input: `<h1>Title</h1><h2 class="sub">Sub</h2><p>Body</p>`,
			want:  "h1. Title\nh2. Sub\nBody",
		},
		{
			name:  "line breaks",
			input: `line1<br>line2<br/>line3<br />line4`,
			want:  "line1\nline2\nline3\nline4",
		},
		{
			name:  "paragraphs with attributes",
			input: `<p class="ql-align-center">a</p><p>b</p>`,
			want:  "a\n\nb",
		},
		{
			name:  "divs",
			input: `<div>a</div><div>b</div>`,
			want:  "a\n\nb",
		},
		{
			name:  "pre is not a paragraph",
			input: `<pre>code</pre>`,
			want:  "code",
		},
		{
			name:  "blockquote is not bold",
			input: `<blockquote>quoted</blockquote>`,
			want:  "quoted",
		},
		{
			name:  "unknown tags are stripped",
			input: `<span style="color:red">red</span> <u>under</u>`,
			want:  "red under",
		},
		{
			name:  "entities",
			input: `a&nbsp;&nbsp;b &amp; c &lt;d&gt; &quot;e&quot; &#39;f&apos;`,
			want:  `a b & c <d> "e" 'f'`,
		},
		{
			name:  "numeric escapes from serialized html",
			input: "say &#34;hi&#34;&#13;\nbye",
			want:  `say "hi"` + "\nbye",
		},
		{
			name:  "entities decode once",
			input: `&amp;lt;`,
			want:  "&lt;",
		},
		{
			name:  "literal no-break space",
			input: "a\u00a0b",
			want:  "a b",
		},
		{
			name:  "blank lines collapse",
			input: `<p>a</p><p></p><p></p><p>b</p>`,
			want:  "a\n\nb",
		},
		{
			name:  "spaces and tabs",
			input: "  a \t  b  \n   c  ",
			want:  "a b\nc",
		},
		{
			name:  "carriage returns",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "unclosed tags",
			input: `<p>unclosed <b>bold`,
			want:  "unclosed *bold",
		},
		{
			name:  "comments are stripped",
			input: `a<!-- note -->b`,
			want:  "ab",
		},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_NoBlankLineRuns(t *testing.T) {
	t.Parallel()

	got := Normalize("<p>a</p><br><br><br><br><div></div><div></div><p>b</p>")

	assert.Equal(t, "a\n\nb", got)
	assert.NotContains(t, got, "\n\n\n")
}
