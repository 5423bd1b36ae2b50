package presenter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// Styles holds the lipgloss styles used by the presenter.
type Styles struct {
	Primary lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Body    lipgloss.Style
}

// NewStyles creates presenter styles from a theme.
func NewStyles(theme tui.Theme, styled bool) Styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return Styles{
			Primary: plain, Normal: plain, Muted: plain, Subtle: plain,
			Success: plain, Warning: plain, Error: plain,
			Heading: plain, Label: plain, Body: plain,
		}
	}
	return Styles{
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary.Dark)).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Foreground.Dark)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted.Dark)),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border.Dark)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success.Dark)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning.Dark)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error.Dark)),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted.Dark)).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted.Dark)),
		Body:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Foreground.Dark)),
	}
}

// EmphasisStyle returns the style for an emphasis name from a schema.
func (s Styles) EmphasisStyle(emphasis string) lipgloss.Style {
	switch emphasis {
	case "primary":
		return s.Primary
	case "muted":
		return s.Muted
	case "success":
		return s.Success
	case "warning":
		return s.Warning
	case "error":
		return s.Error
	default:
		return s.Normal
	}
}

// RenderDetail renders a single record using the schema's detail view.
func RenderDetail(w io.Writer, schema *EntitySchema, data map[string]any, styles Styles, locale Locale) error {
	var b strings.Builder

	if headline := RenderHeadline(schema, data); headline != "" {
		b.WriteString(styles.Primary.Render(headline))
		b.WriteString("\n")
	}

	if len(schema.Views.Detail.Sections) > 0 {
		for _, section := range schema.Views.Detail.Sections {
			renderDetailSection(&b, schema, section, data, styles, locale)
		}
	} else {
		renderAllFields(&b, schema, data, styles, locale)
	}

	if len(schema.Actions) > 0 {
		renderAffordances(&b, schema, data, styles)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderList renders a slice of records, one compact line per row.
func RenderList(w io.Writer, schema *EntitySchema, data []map[string]any, styles Styles, locale Locale) error {
	columns := listColumns(schema)
	if len(columns) == 0 || len(data) == 0 {
		return nil
	}

	var b strings.Builder
	for _, item := range data {
		parts := make([]string, 0, len(columns))
		for _, col := range columns {
			spec := schema.Fields[col]
			formatted := FormatField(spec, item[col], locale)
			parts = append(parts, resolveEmphasis(spec, item[col], styles).Render(formatted))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func listColumns(schema *EntitySchema) []string {
	if cols := schema.Views.List.Columns; len(cols) > 0 {
		return cols
	}
	// No declared columns: title and detail fields in stable order.
	var candidates []string
	for name, spec := range schema.Fields {
		if spec.Role == "title" || spec.Role == "detail" {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)
	return candidates
}

func renderDetailSection(b *strings.Builder, schema *EntitySchema, section DetailSection, data map[string]any, styles Styles, locale Locale) {
	if section.Heading != "" {
		b.WriteString("\n")
		b.WriteString(styles.Heading.Render(section.Heading))
		b.WriteString("\n")
	}

	maxLen := 0
	var visible []string
	for _, name := range section.Fields {
		spec := schema.Fields[name]
		val := data[name]

		switch spec.Role {
		case "title":
			// Rendered as the headline already.
			continue
		case "body":
			if !isEmpty(val) {
				visible = append(visible, name)
			}
			continue
		}

		if label := fieldLabel(name); len(label) > maxLen {
			maxLen = len(label)
		}
		visible = append(visible, name)
	}

	for _, name := range visible {
		spec := schema.Fields[name]
		val := data[name]
		formatted := FormatField(spec, val, locale)
		style := resolveEmphasis(spec, val, styles)

		if spec.Role == "body" {
			if spec.Emphasis == "" {
				style = styles.Body
			}
			b.WriteString("\n")
			b.WriteString(style.Render("  " + formatted))
			b.WriteString("\n")
			continue
		}

		if formatted == "" {
			continue
		}
		b.WriteString(styles.Label.Render(fmt.Sprintf("  %-*s  ", maxLen, fieldLabel(name))))
		b.WriteString(style.Render(formatted))
		b.WriteString("\n")
	}
}

func renderAllFields(b *strings.Builder, schema *EntitySchema, data map[string]any, styles Styles, locale Locale) {
	fieldNames := make([]string, 0, len(schema.Fields))
	for name := range schema.Fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	for _, role := range []string{"detail", "body", "meta"} {
		for _, name := range fieldNames {
			spec := schema.Fields[name]
			if spec.Role != role {
				continue
			}
			val := data[name]
			formatted := FormatField(spec, val, locale)
			if formatted == "" {
				continue
			}
			style := resolveEmphasis(spec, val, styles)

			if role == "body" {
				if spec.Emphasis == "" {
					style = styles.Body
				}
				b.WriteString("\n")
				b.WriteString(style.Render("  " + formatted))
				b.WriteString("\n")
				continue
			}
			b.WriteString(styles.Label.Render(fmt.Sprintf("  %-12s  ", fieldLabel(name))))
			b.WriteString(style.Render(formatted))
			b.WriteString("\n")
		}
	}
}

func renderAffordances(b *strings.Builder, schema *EntitySchema, data map[string]any, styles Styles) {
	var visible []Affordance
	for _, a := range schema.Actions {
		if EvalCondition(a.When, data) {
			visible = append(visible, a)
		}
	}
	if len(visible) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("─────"))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Next:"))
	b.WriteString("\n")

	maxCmd := 0
	cmds := make([]string, len(visible))
	for i, a := range visible {
		cmds[i] = RenderTemplate(a.Cmd, data)
		if len(cmds[i]) > maxCmd {
			maxCmd = len(cmds[i])
		}
	}
	for i, a := range visible {
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("  %-*s  %s", maxCmd, cmds[i], a.Label)))
		b.WriteString("\n")
	}
}

// resolveEmphasis picks the style for a field value, honoring the
// when_overdue escalation for date fields.
func resolveEmphasis(spec FieldSpec, val any, styles Styles) lipgloss.Style {
	if spec.WhenOverdue != "" && IsOverdue(val) {
		return styles.EmphasisStyle(spec.WhenOverdue)
	}
	if spec.Emphasis != "" {
		return styles.EmphasisStyle(spec.Emphasis)
	}
	return styles.Normal
}

// fieldLabel converts a field key to a human label: "due_on" → "Due",
// "scheduled_at" → "Scheduled".
func fieldLabel(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.TrimSuffix(key, " on")
	key = strings.TrimSuffix(key, " at")
	words := strings.Fields(key)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isEmpty(val any) bool {
	if val == nil {
		return true
	}
	switch v := val.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

// RenderDetailMarkdown renders a single record as Markdown.
func RenderDetailMarkdown(w io.Writer, schema *EntitySchema, data map[string]any, locale Locale) error {
	var b strings.Builder

	if headline := RenderHeadline(schema, data); headline != "" {
		b.WriteString("**" + headline + "**\n")
	}

	fields := make([]string, 0)
	if len(schema.Views.Detail.Sections) > 0 {
		for _, section := range schema.Views.Detail.Sections {
			fields = append(fields, section.Fields...)
		}
	} else {
		for name := range schema.Fields {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}

	for _, name := range fields {
		spec := schema.Fields[name]
		if spec.Role == "title" {
			continue
		}
		formatted := FormatField(spec, data[name], locale)
		if formatted == "" {
			continue
		}
		if spec.Role == "body" {
			b.WriteString("\n" + formatted + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("- **%s**: %s\n", fieldLabel(name), formatted))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderListMarkdown renders records as a Markdown table.
func RenderListMarkdown(w io.Writer, schema *EntitySchema, data []map[string]any, locale Locale) error {
	columns := listColumns(schema)
	if len(columns) == 0 || len(data) == 0 {
		return nil
	}

	var b strings.Builder
	headers := make([]string, len(columns))
	seps := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = fieldLabel(col)
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	for _, item := range data {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = escapePipe(FormatField(schema.Fields[col], item[col], locale))
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipe(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
