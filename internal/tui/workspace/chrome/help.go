package chrome

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// Help is a full-screen scrollable overlay listing the global shortcuts
// and the shortcuts of the active view.
type Help struct {
	styles *tui.Styles
	width  int
	height int
	offset int

	globalKeys [][]key.Binding
	viewTitle  string
	viewKeys   [][]key.Binding
}

// NewHelp creates a help overlay.
func NewHelp(styles *tui.Styles) Help {
	return Help{styles: styles}
}

// SetGlobalKeys sets the grouped global key bindings.
func (h *Help) SetGlobalKeys(groups [][]key.Binding) {
	h.globalKeys = groups
}

// SetViewKeys sets the active view's title and grouped bindings.
func (h *Help) SetViewKeys(title string, groups [][]key.Binding) {
	h.viewTitle = title
	h.viewKeys = groups
	h.offset = 0
}

// SetSize sets the overlay dimensions.
func (h *Help) SetSize(w, height int) {
	h.width = w
	h.height = height
	h.clampOffset()
}

// Update handles scrolling keys. It reports whether the overlay should
// close.
func (h *Help) Update(msg tea.Msg) (shouldClose bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch keyMsg.String() {
	case "esc", "q", "?":
		return true
	case "j", "down":
		h.offset++
	case "k", "up":
		h.offset--
	case "ctrl+d":
		h.offset += h.pageSize()
	case "ctrl+u":
		h.offset -= h.pageSize()
	case "g":
		h.offset = 0
	case "G":
		h.offset = h.contentLineCount()
	}
	h.clampOffset()
	return false
}

func (h *Help) pageSize() int {
	size := h.height / 2
	if size < 1 {
		size = 1
	}
	return size
}

func (h *Help) clampOffset() {
	max := h.contentLineCount() - h.visibleLines()
	if h.offset > max {
		h.offset = max
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

func (h *Help) visibleLines() int {
	// Reserve one line for the title and one for the footer.
	lines := h.height - 2
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (h *Help) contentLineCount() int {
	return len(h.contentLines())
}

func (h *Help) contentLines() []string {
	theme := h.styles.Theme()
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(theme.Foreground)
	headStyle := h.styles.Heading

	var lines []string
	appendGroups := func(title string, groups [][]key.Binding) {
		if len(groups) == 0 {
			return
		}
		lines = append(lines, headStyle.Render(title), "")
		for _, group := range groups {
			for _, k := range group {
				if !k.Enabled() {
					continue
				}
				help := k.Help()
				lines = append(lines, "  "+keyStyle.Render(help.Key)+descStyle.Render(help.Desc))
			}
			lines = append(lines, "")
		}
	}

	if h.viewTitle != "" {
		appendGroups(h.viewTitle, h.viewKeys)
	}
	appendGroups("Global", h.globalKeys)
	return lines
}

// View renders the overlay.
func (h Help) View() string {
	title := h.styles.Title.Render("Keyboard shortcuts")

	lines := h.contentLines()
	start := h.offset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + h.visibleLines()
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[start:end], "\n")

	footer := h.styles.Muted.Render("j/k scroll  ·  esc close")
	if len(lines) > h.visibleLines() {
		pct := 100
		if max := len(lines) - h.visibleLines(); max > 0 {
			pct = start * 100 / max
		}
		footer = h.styles.Muted.Render(fmt.Sprintf("j/k scroll (%d%%)  ·  esc close", pct))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}
