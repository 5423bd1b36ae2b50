// Package views contains the workspace screens: the blog, task, lead,
// and calendar lists plus the blog post detail pane.
package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// renderModal centers content in a bordered box over the view area.
func renderModal(styles *tui.Styles, width, height int, content string) string {
	box := styles.Box.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderConfirm renders a delete confirmation prompt.
func renderConfirm(styles *tui.Styles, width, height int, what string) string {
	theme := styles.Theme()
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Error).Render("Delete " + what + "?")
	body := lipgloss.NewStyle().Foreground(theme.Muted).Render("This cannot be undone.")
	hint := lipgloss.NewStyle().Foreground(theme.Muted).Render("y delete · esc cancel")
	content := lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint)
	return renderModal(styles, width, height, content)
}
