package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "", Truncate("", 5))
}

func TestTruncateWideRunes(t *testing.T) {
	// CJK glyphs occupy two cells each.
	got := Truncate("日本語のテキスト", 7)
	assert.LessOrEqual(t, len([]rune(got)), 4)
	assert.Equal(t, "…", string([]rune(got)[len([]rune(got))-1]))
}
