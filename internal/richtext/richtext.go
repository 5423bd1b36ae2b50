// Package richtext converts the HTML bodies stored by the backend into
// Markdown, and renders Markdown for terminal display via glamour.
package richtext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
)

var htmlTagRe = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// IsHTML reports whether s looks like HTML rather than plain text or
// Markdown. Any opening tag qualifies.
func IsHTML(s string) bool {
	return s != "" && htmlTagRe.MatchString(s)
}

// RenderMarkdownWithWidth renders Markdown as styled terminal output,
// word-wrapped to the given width.
func RenderMarkdownWithWidth(md string, width int) (string, error) {
	if md == "" {
		return "", nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Simple tag-to-Markdown rewrites, applied in order. Block elements come
// before inline ones so their inner markup is still intact when matched.
var tagRewrites = []struct {
	re  *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`(?i)<h1[^>]*>(.*?)</h1>`), "# $1\n\n"},
	{regexp.MustCompile(`(?i)<h2[^>]*>(.*?)</h2>`), "## $1\n\n"},
	{regexp.MustCompile(`(?i)<h3[^>]*>(.*?)</h3>`), "### $1\n\n"},
	{regexp.MustCompile(`(?i)<h4[^>]*>(.*?)</h4>`), "#### $1\n\n"},
	{regexp.MustCompile(`(?i)<h5[^>]*>(.*?)</h5>`), "##### $1\n\n"},
	{regexp.MustCompile(`(?i)<h6[^>]*>(.*?)</h6>`), "###### $1\n\n"},
	{regexp.MustCompile(`(?i)<p[^>]*>(.*?)</p>`), "$1\n\n"},
	{regexp.MustCompile(`(?i)<br\s*/?\s*>`), "\n"},
	{regexp.MustCompile(`(?i)<hr\s*/?\s*>`), "\n---\n\n"},
	{regexp.MustCompile(`(?i)<strong[^>]*>(.*?)</strong>`), "**$1**"},
	{regexp.MustCompile(`(?i)<b[^>]*>(.*?)</b>`), "**$1**"},
	{regexp.MustCompile(`(?i)<em[^>]*>(.*?)</em>`), "*$1*"},
	{regexp.MustCompile(`(?i)<i[^>]*>(.*?)</i>`), "*$1*"},
	{regexp.MustCompile(`(?i)<code[^>]*>(.*?)</code>`), "`$1`"},
	{regexp.MustCompile(`(?i)<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`), "[$2]($1)"},
	{regexp.MustCompile(`(?i)<img[^>]*src="([^"]*)"[^>]*alt="([^"]*)"[^>]*/?\s*>`), "![$2]($1)"},
	{regexp.MustCompile(`(?i)<img[^>]*alt="([^"]*)"[^>]*src="([^"]*)"[^>]*/?\s*>`), "![$1]($2)"},
	{regexp.MustCompile(`(?i)<img[^>]*src="([^"]*)"[^>]*/?\s*>`), "![]($1)"},
	{regexp.MustCompile(`(?i)<(?:del|s|strike)[^>]*>(.*?)</(?:del|s|strike)>`), "~~$1~~"},
}

var (
	blockquoteRe = regexp.MustCompile(`(?is)<blockquote[^>]*>(.*?)</blockquote>`)
	preCodeRe    = regexp.MustCompile(`(?is)<pre[^>]*><code([^>]*)>(.*?)</code></pre>`)
	codeLangRe   = regexp.MustCompile(`class="language-([^"]*)"`)
	ulRe         = regexp.MustCompile(`(?is)<ul[^>]*>(.*?)</ul>`)
	olRe         = regexp.MustCompile(`(?is)<ol[^>]*>(.*?)</ol>`)
	liRe         = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	anyTagRe     = regexp.MustCompile(`<[^>]+>`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
)

// HTMLToMarkdown converts backend rich text HTML into Markdown. The
// conversion is regexp-based and lossy on purpose: bodies here are the
// constrained HTML the backend emits, not arbitrary web pages.
func HTMLToMarkdown(html string) string {
	if html == "" {
		return ""
	}
	out := strings.TrimSpace(html)

	// Structured blocks need their items walked, not just rewritten.
	out = preCodeRe.ReplaceAllStringFunc(out, convertCodeBlock)
	out = blockquoteRe.ReplaceAllStringFunc(out, convertBlockquote)
	out = ulRe.ReplaceAllStringFunc(out, func(s string) string {
		return convertList(s, ulRe, func(int) string { return "- " })
	})
	out = olRe.ReplaceAllStringFunc(out, func(s string) string {
		return convertList(s, olRe, func(i int) string { return strconv.Itoa(i+1) + ". " })
	})

	for _, rw := range tagRewrites {
		out = rw.re.ReplaceAllString(out, rw.rep)
	}

	out = anyTagRe.ReplaceAllString(out, "")
	out = unescapeEntities(out)
	out = blankRunsRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func convertCodeBlock(s string) string {
	m := preCodeRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	lang := ""
	if lm := codeLangRe.FindStringSubmatch(m[1]); lm != nil {
		lang = lm[1]
	}
	return "```" + lang + "\n" + unescapeEntities(m[2]) + "\n```\n\n"
}

func convertBlockquote(s string) string {
	m := blockquoteRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	lines := strings.Split(strings.TrimSpace(m[1]), "\n")
	for i, line := range lines {
		lines[i] = "> " + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func convertList(s string, outer *regexp.Regexp, marker func(int) string) string {
	m := outer.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	items := liRe.FindAllStringSubmatch(m[1], -1)
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, marker(i)+strings.TrimSpace(item[1]))
	}
	return strings.Join(lines, "\n") + "\n\n"
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
)

func unescapeEntities(s string) string {
	return entityReplacer.Replace(s)
}
