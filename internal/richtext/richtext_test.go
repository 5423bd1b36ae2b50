package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"plain text", "Just a sentence.", false},
		{"markdown", "# Heading\n\nSome **bold** text", false},
		{"paragraph tag", "<p>Hello</p>", true},
		{"tag with attributes", `<a href="https://example.com">link</a>`, true},
		{"self closing", "line one<br/>line two", true},
		{"less-than in prose", "3 < 5 and 7 > 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTML(tt.input))
		})
	}
}

func TestHTMLToMarkdown_Blocks(t *testing.T) {
	t.Run("headings", func(t *testing.T) {
		got := HTMLToMarkdown("<h1>Campaign recap</h1><h2>Results</h2><h3>Next steps</h3>")
		assert.Contains(t, got, "# Campaign recap")
		assert.Contains(t, got, "## Results")
		assert.Contains(t, got, "### Next steps")
	})

	t.Run("paragraphs separated by blank lines", func(t *testing.T) {
		got := HTMLToMarkdown("<p>First.</p><p>Second.</p>")
		assert.Equal(t, "First.\n\nSecond.", got)
	})

	t.Run("unordered list", func(t *testing.T) {
		got := HTMLToMarkdown("<ul><li>Instagram</li><li>LinkedIn</li><li>TikTok</li></ul>")
		assert.Equal(t, "- Instagram\n- LinkedIn\n- TikTok", got)
	})

	t.Run("ordered list", func(t *testing.T) {
		got := HTMLToMarkdown("<ol><li>Draft</li><li>Review</li><li>Publish</li></ol>")
		assert.Equal(t, "1. Draft\n2. Review\n3. Publish", got)
	})

	t.Run("blockquote", func(t *testing.T) {
		got := HTMLToMarkdown("<blockquote>Ship it.</blockquote>")
		assert.Equal(t, "> Ship it.", got)
	})

	t.Run("multi line blockquote", func(t *testing.T) {
		got := HTMLToMarkdown("<blockquote>Line one.\nLine two.</blockquote>")
		assert.Equal(t, "> Line one.\n> Line two.", got)
	})

	t.Run("code block with language", func(t *testing.T) {
		got := HTMLToMarkdown(`<pre><code class="language-go">fmt.Println(&quot;hi&quot;)</code></pre>`)
		assert.Contains(t, got, "```go\n")
		assert.Contains(t, got, `fmt.Println("hi")`)
		assert.True(t, strings.HasSuffix(got, "```"))
	})

	t.Run("code block without language", func(t *testing.T) {
		got := HTMLToMarkdown("<pre><code>make deploy</code></pre>")
		assert.Contains(t, got, "```\nmake deploy\n```")
	})

	t.Run("horizontal rule", func(t *testing.T) {
		got := HTMLToMarkdown("<p>Above</p><hr><p>Below</p>")
		assert.Contains(t, got, "---")
	})

	t.Run("line breaks", func(t *testing.T) {
		got := HTMLToMarkdown("<p>one<br>two<br/>three</p>")
		assert.Equal(t, "one\ntwo\nthree", got)
	})
}

func TestHTMLToMarkdown_Inline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strong", "<p><strong>now</strong></p>", "**now**"},
		{"b tag", "<p><b>now</b></p>", "**now**"},
		{"em", "<p><em>soon</em></p>", "*soon*"},
		{"i tag", "<p><i>soon</i></p>", "*soon*"},
		{"inline code", "<p>run <code>agencydesk blog list</code></p>", "run `agencydesk blog list`"},
		{"link", `<p><a href="https://example.com/brief">the brief</a></p>`, "[the brief](https://example.com/brief)"},
		{"image", `<img src="https://cdn.example.com/hero.png" alt="hero shot">`, "![hero shot](https://cdn.example.com/hero.png)"},
		{"image without alt", `<img src="https://cdn.example.com/hero.png">`, "![](https://cdn.example.com/hero.png)"},
		{"del", "<p><del>cancelled</del></p>", "~~cancelled~~"},
		{"strike", "<p><strike>cancelled</strike></p>", "~~cancelled~~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToMarkdown(tt.input))
		})
	}
}

func TestHTMLToMarkdown_Cleanup(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", HTMLToMarkdown(""))
	})

	t.Run("unknown tags stripped", func(t *testing.T) {
		got := HTMLToMarkdown(`<div class="wrap"><span>kept text</span></div>`)
		assert.Equal(t, "kept text", got)
	})

	t.Run("entities unescaped", func(t *testing.T) {
		got := HTMLToMarkdown("<p>Q&amp;A at 3pm &mdash; bring questions</p>")
		assert.Contains(t, got, "Q&A")
	})

	t.Run("escaped markup stays literal", func(t *testing.T) {
		got := HTMLToMarkdown("<p>&amp;lt;p&amp;gt;</p>")
		assert.Equal(t, "&lt;p&gt;", got, "double-escaped input unescapes one level only")
	})

	t.Run("excess blank lines collapsed", func(t *testing.T) {
		got := HTMLToMarkdown("<h1>A</h1><p>B</p><p>C</p>")
		assert.NotContains(t, got, "\n\n\n")
	})
}

func TestRenderMarkdownWithWidth(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		out, err := RenderMarkdownWithWidth("", 80)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("renders content", func(t *testing.T) {
		out, err := RenderMarkdownWithWidth("# Launch plan\n\nPost the teaser on **Monday**.", 80)
		require.NoError(t, err)
		assert.Contains(t, out, "Launch plan")
		assert.Contains(t, out, "Monday")
	})

	t.Run("wraps to width", func(t *testing.T) {
		long := strings.Repeat("word ", 40)
		out, err := RenderMarkdownWithWidth(long, 30)
		require.NoError(t, err)
		assert.Greater(t, strings.Count(out, "\n"), 2, "narrow width forces wrapping")
	})
}
