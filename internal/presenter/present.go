package presenter

import (
	"io"

	"github.com/agencydesk/agencydesk/internal/tui"
)

// RenderMode controls the output format.
type RenderMode int

const (
	ModeStyled   RenderMode = iota // ANSI styled terminal output
	ModeMarkdown                   // literal Markdown syntax
)

// Present attempts schema-aware rendering of the data. Returns false
// when no schema matched, in which case the caller falls back to the
// generic output writer.
func Present(w io.Writer, data any, entityHint string, mode RenderMode) bool {
	return PresentWithTheme(w, data, entityHint, mode, tui.ResolveTheme())
}

// PresentWithTheme is Present with an explicit theme, for tests.
func PresentWithTheme(w io.Writer, data any, entityHint string, mode RenderMode, theme tui.Theme) bool {
	schema := Detect(data, entityHint)
	if schema == nil {
		return false
	}

	locale := DetectLocale()
	if mode == ModeMarkdown {
		switch d := data.(type) {
		case map[string]any:
			return RenderDetailMarkdown(w, schema, d, locale) == nil
		case []map[string]any:
			if len(d) == 0 {
				return false
			}
			return RenderListMarkdown(w, schema, d, locale) == nil
		}
		return false
	}

	styles := NewStyles(theme, true)
	switch d := data.(type) {
	case map[string]any:
		return RenderDetail(w, schema, d, styles, locale) == nil
	case []map[string]any:
		if len(d) == 0 {
			return false
		}
		return RenderList(w, schema, d, styles, locale) == nil
	}
	return false
}
