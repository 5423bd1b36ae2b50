package widget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/tui"
)

func testContent() *Content {
	c := NewContent(tui.NewStyles())
	c.SetSize(60, 10)
	return c
}

func TestContent_Markdown(t *testing.T) {
	c := testContent()
	c.SetContent("# Heading\n\nSome body text.")

	out := c.View()
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "Some body text.")
}

func TestContent_HTMLConverted(t *testing.T) {
	c := testContent()
	c.SetContent("<h1>Campaign recap</h1><p>It went <strong>well</strong>.</p>")

	out := c.View()
	assert.Contains(t, out, "Campaign recap")
	assert.Contains(t, out, "well")
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<strong>")
}

func TestContent_ScrollClamps(t *testing.T) {
	c := testContent()
	c.SetSize(60, 3)
	c.SetContent(strings.Repeat("line\n\n", 20))
	require.Greater(t, c.LineCount(), 3)

	c.ScrollUp(5)
	first := c.View()

	c.ScrollDown(1000)
	assert.NotEqual(t, first, c.View(), "scrolled past the first window")

	c.ScrollDown(1000)
	bottom := c.View()
	c.ScrollDown(1)
	assert.Equal(t, bottom, c.View(), "offset clamps at the end")
}

func TestContent_SameBodyKeepsScroll(t *testing.T) {
	c := testContent()
	c.SetSize(60, 3)
	body := strings.Repeat("paragraph\n\n", 10)
	c.SetContent(body)
	c.ScrollDown(4)
	scrolled := c.View()

	// A pool refresh delivering the same body must not reset scroll.
	c.SetContent(body)
	assert.Equal(t, scrolled, c.View())
}

func TestContent_EmptyBody(t *testing.T) {
	c := testContent()
	c.SetContent("")
	assert.Equal(t, "", c.View())
	assert.Equal(t, 0, c.LineCount())
}
