// Package chrome provides always-visible shell components for the
// workspace: the status bar with its transient flash messages, and the
// help overlay.
package chrome

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// FlashDuration is how long a flash message remains visible.
const FlashDuration = 3 * time.Second

// flashExpiredMsg clears the current flash message.
type flashExpiredMsg struct {
	seq uint64
}

// StatusBar renders the bottom status bar: key hints on the left, a
// transient flash message or the account and pager info on the right.
type StatusBar struct {
	styles   *tui.Styles
	width    int
	account  string
	pager    string // e.g. "page 2/5"
	keyHints []key.Binding

	flash    string
	flashErr bool
	flashSeq uint64 // a newer flash invalidates older expiry ticks
}

// NewStatusBar creates a new status bar.
func NewStatusBar(styles *tui.Styles) StatusBar {
	return StatusBar{styles: styles}
}

// SetAccount sets the displayed account identifier.
func (s *StatusBar) SetAccount(account string) {
	s.account = account
}

// SetPager sets the pagination segment, or clears it with "".
func (s *StatusBar) SetPager(pager string) {
	s.pager = pager
}

// SetKeyHints sets the key bindings shown as hints.
func (s *StatusBar) SetKeyHints(hints []key.Binding) {
	s.keyHints = hints
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Flash shows a transient message that clears itself after
// FlashDuration. The returned command schedules the expiry.
func (s *StatusBar) Flash(text string, isError bool) tea.Cmd {
	s.flash = text
	s.flashErr = isError
	s.flashSeq++
	seq := s.flashSeq
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// Flashing returns whether a flash message is currently visible.
func (s *StatusBar) Flashing() bool {
	return s.flash != ""
}

// Update handles flash expiry ticks.
func (s *StatusBar) Update(msg tea.Msg) {
	if exp, ok := msg.(flashExpiredMsg); ok && exp.seq == s.flashSeq {
		s.flash = ""
		s.flashErr = false
	}
}

// View renders the status bar.
func (s StatusBar) View() string {
	if s.width <= 0 {
		return ""
	}

	theme := s.styles.Theme()
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	descStyle := lipgloss.NewStyle().Foreground(theme.Muted)

	var hints []string
	for _, k := range s.keyHints {
		if !k.Enabled() {
			continue
		}
		help := k.Help()
		hints = append(hints, keyStyle.Render(help.Key)+descStyle.Render(" "+help.Desc))
	}
	left := strings.Join(hints, "  ")

	var right string
	switch {
	case s.flash != "":
		style := lipgloss.NewStyle().Foreground(theme.Success)
		prefix := "✓ "
		if s.flashErr {
			style = lipgloss.NewStyle().Foreground(theme.Error)
			prefix = "✗ "
		}
		right = style.Render(prefix + s.flash)
	default:
		var segs []string
		if s.pager != "" {
			segs = append(segs, s.pager)
		}
		if s.account != "" {
			segs = append(segs, "["+s.account+"]")
		}
		right = descStyle.Render(strings.Join(segs, "  "))
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	bar := lipgloss.NewStyle().
		Width(s.width).
		Background(theme.Background)
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}
