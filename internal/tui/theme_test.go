package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name: "quoted values",
			input: `accent = "#89b4fa"
foreground = "#cdd6f4"`,
			want: map[string]string{"accent": "#89b4fa", "foreground": "#cdd6f4"},
		},
		{
			name: "single quotes and bare values",
			input: `accent = '#89b4fa'
foreground = #cdd6f4`,
			want: map[string]string{"accent": "#89b4fa", "foreground": "#cdd6f4"},
		},
		{
			name: "comments and blank lines skipped",
			input: `# palette
accent = "#89b4fa" # primary blue

foreground = "#cdd6f4"`,
			want: map[string]string{"accent": "#89b4fa", "foreground": "#cdd6f4"},
		},
		{
			name: "non-color and malformed lines skipped",
			input: `accent = "#89b4fa"
not a key value line
name = "catppuccin"
bad = "#gggggg"
short = "#1234"
three = "#abc"`,
			want: map[string]string{"accent": "#89b4fa", "three": "#abc"},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseColorTable([]byte(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripTrailingComment(t *testing.T) {
	assert.Equal(t, ` "#89b4fa" `, stripTrailingComment(` "#89b4fa" # blue`))
	assert.Equal(t, ` "#aa#bb" `, stripTrailingComment(` "#aa#bb" `), "hash inside quotes survives")
	assert.Equal(t, ` '#abc'`, stripTrailingComment(` '#abc'`))
}

func TestThemeFromColors(t *testing.T) {
	t.Run("full palette", func(t *testing.T) {
		theme := themeFromColors(map[string]string{
			"accent":     "#89b4fa",
			"foreground": "#cdd6f4",
			"background": "#1e1e2e",
			"color1":     "#f38ba8",
			"color2":     "#a6e3a1",
			"color3":     "#f9e2af",
			"color7":     "#bac2de",
			"color8":     "#585b70",
		})

		assert.Equal(t, "#89b4fa", theme.Primary.Dark)
		assert.Equal(t, "#bac2de", theme.Secondary.Dark)
		assert.Equal(t, "#a6e3a1", theme.Success.Dark)
		assert.Equal(t, "#f9e2af", theme.Warning.Dark)
		assert.Equal(t, "#f38ba8", theme.Error.Dark)
		assert.Equal(t, "#585b70", theme.Muted.Dark)
		assert.Equal(t, "#585b70", theme.Border.Dark)
		assert.Equal(t, "#1e1e2e", theme.Background.Dark)
		assert.Equal(t, "#cdd6f4", theme.Foreground.Dark)
	})

	t.Run("light variants keep defaults", func(t *testing.T) {
		theme := themeFromColors(map[string]string{"accent": "#89b4fa"})
		defaults := DefaultTheme()

		assert.Equal(t, defaults.Primary.Light, theme.Primary.Light)
		assert.Equal(t, defaults.Error, theme.Error, "unmapped slots untouched")
	})

	t.Run("color4 is the primary fallback", func(t *testing.T) {
		theme := themeFromColors(map[string]string{"color4": "#0000ff"})
		assert.Equal(t, "#0000ff", theme.Primary.Dark)
	})

	t.Run("empty map is the default theme", func(t *testing.T) {
		assert.Equal(t, DefaultTheme(), themeFromColors(nil))
	})
}

func TestLoadThemeFromFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "colors.toml")
		content := `accent = "#89b4fa"
color1 = "#f38ba8"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		theme, err := LoadThemeFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "#89b4fa", theme.Primary.Dark)
		assert.Equal(t, "#f38ba8", theme.Error.Dark)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadThemeFromFile(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestNoColorTheme(t *testing.T) {
	theme := NoColorTheme()
	assert.Empty(t, theme.Primary.Dark)
	assert.Empty(t, theme.Error.Light)
	assert.Empty(t, theme.Foreground.Dark)
}

func clearThemeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NO_COLOR", "AGENCYDESK_THEME"} {
		if prev, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
	}
}

func TestResolveTheme(t *testing.T) {
	t.Run("NO_COLOR wins", func(t *testing.T) {
		clearThemeEnv(t)
		t.Setenv("NO_COLOR", "1")
		t.Setenv("AGENCYDESK_THEME", "/nonexistent.toml")

		theme := ResolveTheme()
		assert.Empty(t, theme.Primary.Dark)
	})

	t.Run("AGENCYDESK_THEME file", func(t *testing.T) {
		clearThemeEnv(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte(`accent = "#ff0000"`), 0o644))
		t.Setenv("AGENCYDESK_THEME", path)

		theme := ResolveTheme()
		assert.Equal(t, "#ff0000", theme.Primary.Dark)
	})

	t.Run("unreadable AGENCYDESK_THEME falls back", func(t *testing.T) {
		clearThemeEnv(t)
		t.Setenv("AGENCYDESK_THEME", "/nonexistent/theme.toml")

		theme := ResolveTheme()
		assert.NotEmpty(t, theme.Primary.Dark, "fallback theme still has colors")
	})

	t.Run("no env vars resolves to a colored theme", func(t *testing.T) {
		clearThemeEnv(t)

		theme := ResolveTheme()
		assert.False(t, theme.Primary.Dark == "" && theme.Primary.Light == "")
	})
}
