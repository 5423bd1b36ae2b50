package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
	"github.com/agencydesk/agencydesk/internal/tui/empty"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
)

// ListItem is a single row in a list view.
type ListItem struct {
	ID          string
	Title       string
	Description string
	Extra       string // right-aligned detail (status, date, score)
	Marked      bool   // row is part of the multi-row selection
	Header      bool   // section divider, not selectable
}

// FilterValue returns the string matched during interactive filtering.
func (i ListItem) FilterValue() string {
	return i.Title + " " + i.Description
}

// List is the scrolling list shared by every list screen: a cursor
// over a viewport, fuzzy as-you-type filtering, and structured empty
// states.
type List struct {
	items    []ListItem
	filtered []ListItem
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
	loading  bool

	filter    string
	filtering bool

	styles   *tui.Styles
	keys     workspace.ListKeyMap
	emptyMsg *empty.Message
}

// NewList creates a list widget.
func NewList(styles *tui.Styles) *List {
	return &List{
		styles: styles,
		keys:   workspace.DefaultListKeyMap(),
	}
}

// SetItems replaces the rows. The cursor is clamped and nudged off any
// header it lands on.
func (l *List) SetItems(items []ListItem) {
	l.items = items
	l.applyFilter()
	l.loading = false
	if l.cursor >= len(l.filtered) {
		l.cursor = max(0, len(l.filtered)-1)
	}
	l.skipHeaders(1)
	l.clampOffset()
}

// SetLoading puts the list in loading state.
func (l *List) SetLoading(loading bool) {
	l.loading = loading
}

// SetEmptyMessage sets the structured empty state shown when there are
// no rows and no filter.
func (l *List) SetEmptyMessage(msg empty.Message) {
	l.emptyMsg = &msg
}

// SetSize updates dimensions.
func (l *List) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.clampOffset()
}

// SetFocused sets focus state. An unfocused list ignores keys and
// renders no cursor.
func (l *List) SetFocused(focused bool) {
	l.focused = focused
}

// Selected returns the row under the cursor, or nil.
func (l *List) Selected() *ListItem {
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return nil
	}
	item := l.filtered[l.cursor]
	return &item
}

// Items returns the currently visible (possibly filtered) rows.
func (l *List) Items() []ListItem {
	return l.filtered
}

// Len returns the number of visible rows.
func (l *List) Len() int {
	return len(l.filtered)
}

// SelectByID moves the cursor to the row with the given ID. Reports
// whether the row was found.
func (l *List) SelectByID(id string) bool {
	for i, item := range l.filtered {
		if item.ID == id && !item.Header {
			l.cursor = i
			l.clampOffset()
			return true
		}
	}
	return false
}

// StartFilter enters interactive filter mode.
func (l *List) StartFilter() {
	l.filtering = true
	l.filter = ""
	l.resetAfterFilter()
}

// StopFilter leaves filter mode and restores all rows.
func (l *List) StopFilter() {
	l.filtering = false
	l.filter = ""
	l.resetAfterFilter()
}

// Filtering reports whether interactive filter mode is active.
func (l *List) Filtering() bool {
	return l.filtering
}

// Filter returns the active filter text.
func (l *List) Filter() string {
	return l.filter
}

func (l *List) resetAfterFilter() {
	l.applyFilter()
	l.cursor = 0
	l.offset = 0
	l.skipHeaders(1)
}

// Update handles navigation keys. Only key messages are consumed, and
// only while focused.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if l.filtering {
		l.handleFilterKey(km)
		return nil
	}

	half := l.visibleHeight() / 2
	if half < 1 {
		half = 1
	}

	switch {
	case key.Matches(km, l.keys.Up):
		l.moveCursor(-1)
	case key.Matches(km, l.keys.Down):
		l.moveCursor(1)
	case key.Matches(km, l.keys.Top):
		l.cursor = 0
		l.offset = 0
		l.skipHeaders(1)
	case key.Matches(km, l.keys.Bottom):
		l.cursor = max(0, len(l.filtered)-1)
		l.skipHeaders(-1)
		l.clampOffset()
	case key.Matches(km, l.keys.PageDown):
		l.cursor = min(l.cursor+half, max(0, len(l.filtered)-1))
		l.skipHeaders(1)
		l.clampOffset()
	case key.Matches(km, l.keys.PageUp):
		l.cursor = max(l.cursor-half, 0)
		l.skipHeaders(-1)
		l.clampOffset()
	}
	return nil
}

func (l *List) handleFilterKey(km tea.KeyMsg) {
	switch km.String() {
	case "esc":
		l.StopFilter()
	case "enter":
		// keep the filter applied, leave typing mode
		l.filtering = false
	case "backspace":
		if l.filter == "" {
			l.StopFilter()
			return
		}
		runes := []rune(l.filter)
		l.filter = string(runes[:len(runes)-1])
		l.resetAfterFilter()
	case "up", "ctrl+k":
		l.moveCursor(-1)
	case "down", "ctrl+j":
		l.moveCursor(1)
	default:
		if km.Type == tea.KeyRunes {
			l.filter += string(km.Runes)
			l.resetAfterFilter()
		}
	}
}

func (l *List) moveCursor(delta int) {
	n := len(l.filtered)
	if n == 0 {
		return
	}
	next := l.cursor + delta
	for next >= 0 && next < n && l.filtered[next].Header {
		next += delta
	}
	if next < 0 || next >= n {
		return
	}
	l.cursor = next
	l.clampOffset()
}

func (l *List) skipHeaders(direction int) {
	n := len(l.filtered)
	for l.cursor >= 0 && l.cursor < n && l.filtered[l.cursor].Header {
		l.cursor += direction
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= n {
		l.cursor = max(0, n-1)
	}
}

func (l *List) clampOffset() {
	visible := l.visibleHeight()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l *List) visibleHeight() int {
	h := l.height
	if h <= 0 {
		h = 10
	}
	if l.filtering || l.filter != "" {
		h-- // filter bar
	}
	if len(l.filtered) > h {
		h-- // scroll position line
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (l *List) applyFilter() {
	if l.filter == "" {
		l.filtered = l.items
		return
	}
	l.filtered = nil
	for _, item := range l.items {
		if item.Header {
			continue
		}
		if fuzzyMatch(item.FilterValue(), l.filter) {
			l.filtered = append(l.filtered, item)
		}
	}
}

// fuzzyMatch reports whether query is a case-insensitive subsequence
// of s.
func fuzzyMatch(s, query string) bool {
	s = strings.ToLower(s)
	q := []rune(strings.ToLower(query))
	qi := 0
	for _, r := range s {
		if qi < len(q) && r == q[qi] {
			qi++
		}
	}
	return qi == len(q)
}

// View renders the list.
func (l *List) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	theme := l.styles.Theme()
	mutedStyle := lipgloss.NewStyle().Foreground(theme.Muted)

	if l.loading {
		return mutedStyle.Width(l.width).Render("Loading…")
	}

	var b strings.Builder
	if l.filtering || l.filter != "" {
		b.WriteString(l.renderFilterBar(theme))
		b.WriteString("\n")
	}

	if len(l.filtered) == 0 {
		switch {
		case l.filter != "":
			b.WriteString(mutedStyle.Width(l.width).Render("No matches"))
		case l.emptyMsg != nil:
			b.WriteString(l.renderEmptyMessage(theme))
		default:
			b.WriteString(mutedStyle.Width(l.width).Render("Nothing here yet"))
		}
		return b.String()
	}

	visible := l.visibleHeight()
	end := min(l.offset+visible, len(l.filtered))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderItem(l.filtered[i], i == l.cursor && l.focused, theme))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(l.filtered) > visible {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d/%d", l.cursor+1, len(l.filtered))))
	}
	return b.String()
}

func (l *List) renderFilterBar(theme tui.Theme) string {
	prefix := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("/")
	cursor := ""
	if l.filtering {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render("█")
	}
	counts := lipgloss.NewStyle().Foreground(theme.Muted).
		Render(fmt.Sprintf("%d/%d", len(l.filtered), len(l.items)))

	text := l.filter
	maxText := l.width - lipgloss.Width(counts) - lipgloss.Width(prefix) - lipgloss.Width(cursor) - 2
	if maxText > 0 && lipgloss.Width(text) > maxText {
		text = Truncate(text, maxText)
	}

	left := prefix + text + cursor
	gap := l.width - lipgloss.Width(left) - lipgloss.Width(counts)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + counts
}

func (l *List) renderEmptyMessage(theme tui.Theme) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground)
	bodyStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	hintStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

	lines := []string{titleStyle.Render(l.emptyMsg.Title)}
	if l.emptyMsg.Body != "" {
		lines = append(lines, bodyStyle.Render(l.emptyMsg.Body))
	}
	if len(l.emptyMsg.Hints) > 0 {
		lines = append(lines, "")
		for _, hint := range l.emptyMsg.Hints {
			lines = append(lines, hintStyle.Render("  "+hint))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (l *List) renderItem(item ListItem, underCursor bool, theme tui.Theme) string {
	if item.Header {
		return lipgloss.NewStyle().
			Foreground(theme.Muted).Bold(true).MaxWidth(l.width).
			Render("── " + item.Title + " ──")
	}

	cursor := "  "
	titleStyle := lipgloss.NewStyle().Foreground(theme.Foreground)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	if underCursor {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> ")
		titleStyle = titleStyle.Bold(true).Foreground(theme.Primary)
	}

	mark := ""
	if item.Marked {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ ")
	}

	maxTitle := l.width - lipgloss.Width(cursor) - lipgloss.Width(mark)
	if item.Extra != "" {
		maxTitle -= lipgloss.Width(item.Extra) + 2
	}
	title := item.Title
	if maxTitle > 0 {
		title = Truncate(title, maxTitle)
	}

	line := cursor + mark + titleStyle.Render(title)

	if item.Description != "" {
		avail := l.width - lipgloss.Width(line)
		if item.Extra != "" {
			avail -= lipgloss.Width(item.Extra) + 2
		}
		if avail > 4 {
			line += mutedStyle.Render(" " + Truncate(item.Description, avail-1))
		}
	}

	if item.Extra != "" {
		extra := mutedStyle.Render(item.Extra)
		gap := l.width - lipgloss.Width(line) - lipgloss.Width(extra)
		if gap > 0 {
			line += strings.Repeat(" ", gap) + extra
		}
	}
	return line
}
