package chrome

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/tui"
)

func testStatusBar() StatusBar {
	s := NewStatusBar(tui.NewStyles())
	s.SetWidth(80)
	return s
}

func TestStatusBar_View(t *testing.T) {
	s := testStatusBar()
	s.SetAccount("acme")
	s.SetPager("page 2/5 · 120 posts")
	s.SetKeyHints([]key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	})

	out := s.View()
	assert.Contains(t, out, "n new")
	assert.Contains(t, out, "x delete")
	assert.Contains(t, out, "page 2/5")
	assert.Contains(t, out, "[acme]")
}

func TestStatusBar_ZeroWidth(t *testing.T) {
	s := NewStatusBar(tui.NewStyles())
	assert.Equal(t, "", s.View())
}

func TestStatusBar_Flash(t *testing.T) {
	s := testStatusBar()
	s.SetAccount("acme")

	cmd := s.Flash("Published", false)
	require.NotNil(t, cmd)
	assert.True(t, s.Flashing())
	assert.Contains(t, s.View(), "✓ Published")
	assert.NotContains(t, s.View(), "[acme]", "flash replaces the account segment")

	s.Update(flashExpiredMsg{seq: 1})
	assert.False(t, s.Flashing())
	assert.Contains(t, s.View(), "[acme]")
}

func TestStatusBar_FlashError(t *testing.T) {
	s := testStatusBar()
	s.Flash("save failed", true)
	assert.Contains(t, s.View(), "✗ save failed")
}

func TestStatusBar_StaleExpiryIgnored(t *testing.T) {
	s := testStatusBar()
	s.Flash("first", false)
	s.Flash("second", false)

	// Expiry for the first flash arrives after the second was shown.
	s.Update(flashExpiredMsg{seq: 1})
	assert.True(t, s.Flashing())
	assert.Contains(t, s.View(), "second")

	s.Update(flashExpiredMsg{seq: 2})
	assert.False(t, s.Flashing())
}

func TestStatusBar_DisabledHintsHidden(t *testing.T) {
	s := testStatusBar()
	disabled := key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish"))
	disabled.SetEnabled(false)
	s.SetKeyHints([]key.Binding{disabled})

	assert.NotContains(t, s.View(), "publish")
}

func TestStatusBar_UpdateIgnoresOtherMsgs(t *testing.T) {
	s := testStatusBar()
	s.Flash("hello", false)
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.Flashing())
}
