package widget

import (
	"strings"

	"github.com/agencydesk/agencydesk/internal/richtext"
	"github.com/agencydesk/agencydesk/internal/tui"
)

// Content renders a record body as terminal-styled text with scrolling.
// Bodies arrive as Markdown or HTML depending on where the record was
// authored; HTML is converted to Markdown before styling.
type Content struct {
	styles *tui.Styles
	width  int
	height int

	raw    string
	lines  []string
	offset int
}

// NewContent creates a content renderer.
func NewContent(styles *tui.Styles) *Content {
	return &Content{styles: styles}
}

// SetContent sets the raw body and renders it. Re-setting the same
// body is a no-op so pool refreshes don't reset the scroll position.
func (c *Content) SetContent(raw string) {
	if raw == c.raw {
		return
	}
	c.raw = raw
	c.offset = 0
	c.render()
}

// SetSize updates dimensions. Only a width change forces a re-render;
// height just moves the viewport.
func (c *Content) SetSize(w, h int) {
	widthChanged := w != c.width
	c.height = h
	if widthChanged {
		c.width = w
		c.render()
	}
	c.clampOffset()
}

// ScrollDown scrolls down by n lines.
func (c *Content) ScrollDown(n int) {
	c.offset += n
	c.clampOffset()
}

// ScrollUp scrolls up by n lines.
func (c *Content) ScrollUp(n int) {
	c.offset -= n
	c.clampOffset()
}

// LineCount returns the number of rendered lines.
func (c *Content) LineCount() int {
	return len(c.lines)
}

// View renders the visible window.
func (c *Content) View() string {
	if c.width <= 0 || c.height <= 0 || len(c.lines) == 0 {
		return ""
	}
	end := min(c.offset+c.height, len(c.lines))
	return strings.Join(c.lines[c.offset:end], "\n")
}

func (c *Content) render() {
	if c.raw == "" || c.width <= 0 {
		c.lines = nil
		return
	}

	md := c.raw
	if richtext.IsHTML(md) {
		md = richtext.HTMLToMarkdown(md)
	}
	rendered, err := richtext.RenderMarkdownWithWidth(md, c.width)
	if err != nil {
		rendered = md
	}

	c.lines = strings.Split(rendered, "\n")
	// The markdown renderer appends a trailing newline.
	if n := len(c.lines); n > 0 && c.lines[n-1] == "" {
		c.lines = c.lines[:n-1]
	}
	c.clampOffset()
}

func (c *Content) clampOffset() {
	maxOffset := len(c.lines) - c.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}
