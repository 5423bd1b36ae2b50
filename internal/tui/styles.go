// Package tui holds shared terminal UI building blocks: the color theme,
// derived lipgloss styles, and small interactive helpers used by commands.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles derived from a Theme. Views that need
// colors beyond these derive their own styles from Theme().
type Styles struct {
	theme Theme

	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}

// NewStyles builds styles from the default theme.
func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

// NewStylesWithTheme builds styles from an explicit theme.
func NewStylesWithTheme(theme Theme) *Styles {
	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Success: lipgloss.NewStyle().
			Foreground(theme.Success),
		Error: lipgloss.NewStyle().
			Foreground(theme.Error),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() Theme {
	return s.theme
}
