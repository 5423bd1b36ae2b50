package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// PreviewField is a labeled value shown in the detail header.
type PreviewField struct {
	Key   string
	Value string
}

// Preview renders a record detail pane: a title, aligned metadata
// fields, and a scrollable body.
type Preview struct {
	styles *tui.Styles
	width  int
	height int

	title   string
	fields  []PreviewField
	content *Content
}

// NewPreview creates a detail pane.
func NewPreview(styles *tui.Styles) *Preview {
	return &Preview{
		styles:  styles,
		content: NewContent(styles),
	}
}

// SetTitle sets the pane title.
func (p *Preview) SetTitle(title string) {
	p.title = title
}

// SetFields sets the metadata fields.
func (p *Preview) SetFields(fields []PreviewField) {
	p.fields = fields
}

// SetBody sets the body content (Markdown or HTML).
func (p *Preview) SetBody(raw string) {
	p.content.SetContent(raw)
}

// SetSize updates dimensions. The body gets whatever height remains
// after the title and fields.
func (p *Preview) SetSize(w, h int) {
	p.width = w
	p.height = h

	header := 1
	if len(p.fields) > 0 {
		header += len(p.fields) + 1
	}
	bodyHeight := h - header
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	p.content.SetSize(w, bodyHeight)
}

// ScrollDown scrolls the body down.
func (p *Preview) ScrollDown(n int) {
	p.content.ScrollDown(n)
}

// ScrollUp scrolls the body up.
func (p *Preview) ScrollUp(n int) {
	p.content.ScrollUp(n)
}

// View renders the pane.
func (p *Preview) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	theme := p.styles.Theme()
	var sections []string

	if p.title != "" {
		sections = append(sections, lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Width(p.width).
			Render(p.title))
	}

	if len(p.fields) > 0 {
		keyWidth := 0
		for _, f := range p.fields {
			if w := lipgloss.Width(f.Key); w > keyWidth {
				keyWidth = w
			}
		}
		keyStyle := lipgloss.NewStyle().Foreground(theme.Muted).Width(keyWidth + 1).Align(lipgloss.Right)
		valStyle := lipgloss.NewStyle().Foreground(theme.Foreground)
		var lines []string
		for _, f := range p.fields {
			line := keyStyle.Render(f.Key+":") + " " + valStyle.Render(f.Value)
			lines = append(lines, lipgloss.NewStyle().MaxWidth(p.width).Render(line))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if body := p.content.View(); body != "" {
		sections = append(sections, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
