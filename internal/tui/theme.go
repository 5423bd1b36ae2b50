package tui

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the semantic color palette the rest of the TUI is built on.
type Theme struct {
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
}

// DefaultTheme is the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Primary:    lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
		Secondary:  lipgloss.AdaptiveColor{Light: "#5f6368", Dark: "#9aa0a6"},
		Success:    lipgloss.AdaptiveColor{Light: "#1e8e3e", Dark: "#81c995"},
		Warning:    lipgloss.AdaptiveColor{Light: "#f9ab00", Dark: "#fdd663"},
		Error:      lipgloss.AdaptiveColor{Light: "#d93025", Dark: "#f28b82"},
		Muted:      lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"},
		Background: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f1f1f"},
		Foreground: lipgloss.AdaptiveColor{Light: "#202124", Dark: "#e8eaed"},
		Border:     lipgloss.AdaptiveColor{Light: "#dadce0", Dark: "#3c4043"},
	}
}

// NoColorTheme has every color empty, which lipgloss renders as plain text.
func NoColorTheme() Theme {
	return Theme{}
}

// ResolveTheme picks the active palette, in order of precedence:
//
//  1. NO_COLOR set: plain text, no colors
//  2. AGENCYDESK_THEME: path to a colors.toml file
//  3. ~/.config/agencydesk/theme/colors.toml (the theme directory may be a
//     symlink into another theme system)
//  4. built-in default
//
// A theme file that fails to load falls through to the next source.
func ResolveTheme() Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return NoColorTheme()
	}
	if path := os.Getenv("AGENCYDESK_THEME"); path != "" {
		if theme, err := LoadThemeFromFile(path); err == nil {
			return theme
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "agencydesk", "theme", "colors.toml")
		if theme, err := LoadThemeFromFile(path); err == nil {
			return theme
		}
	}
	return DefaultTheme()
}

// LoadThemeFromFile reads a colors.toml palette and overlays it on the
// default theme.
func LoadThemeFromFile(path string) (Theme, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return Theme{}, err
	}
	return themeFromColors(parseColorTable(data)), nil
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// parseColorTable reads `key = "#rrggbb"` lines from a colors.toml file.
// It is deliberately not a full TOML parser: terminal theme files are flat
// key/value tables, and anything that is not a hex color is skipped.
func parseColorTable(data []byte) map[string]string {
	colors := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rest, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value := strings.TrimSpace(stripTrailingComment(rest))
		value = strings.Trim(value, `"'`)
		if !hexColorRe.MatchString(value) {
			continue
		}
		colors[strings.TrimSpace(key)] = value
	}
	return colors
}

// stripTrailingComment removes a # comment that sits outside quotes.
func stripTrailingComment(s string) string {
	var quote rune
	for i, c := range s {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return s[:i]
		}
	}
	return s
}

// themeFromColors maps terminal theme color names onto Theme semantics.
// Terminal themes are typically dark palettes, so parsed values replace the
// Dark variant and the Light variant keeps its default. Recognized keys,
// first match wins:
//
//	accent, color4  → Primary
//	color7          → Secondary
//	color2          → Success
//	color3          → Warning
//	color1          → Error
//	color8, color0  → Muted and Border
//	background      → Background
//	foreground      → Foreground
func themeFromColors(colors map[string]string) Theme {
	theme := DefaultTheme()

	dark := func(slot *lipgloss.AdaptiveColor, keys ...string) {
		for _, k := range keys {
			if v, ok := colors[k]; ok && v != "" {
				slot.Dark = v
				return
			}
		}
	}

	dark(&theme.Primary, "accent", "color4")
	dark(&theme.Secondary, "color7")
	dark(&theme.Success, "color2")
	dark(&theme.Warning, "color3")
	dark(&theme.Error, "color1")
	dark(&theme.Muted, "color8", "color0")
	dark(&theme.Border, "color8", "color0")
	dark(&theme.Background, "background")
	dark(&theme.Foreground, "foreground")

	return theme
}
