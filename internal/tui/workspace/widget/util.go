// Package widget holds reusable rendering components for workspace
// views: the scrolling list and the read-only detail preview.
package widget

import "github.com/charmbracelet/lipgloss"

// Truncate shortens s to fit within width display cells, appending an
// ellipsis when anything was cut. Width is measured with lipgloss so
// wide runes count correctly.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if lipgloss.Width(string(runes))+1 <= width {
			break
		}
	}
	return string(runes) + "…"
}
