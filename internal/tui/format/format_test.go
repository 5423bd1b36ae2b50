package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "○", StatusIcon("draft"))
	assert.Equal(t, "○", StatusIcon("not_started"))
	assert.Equal(t, "◐", StatusIcon("in_progress"))
	assert.Equal(t, "●", StatusIcon("published"))
	assert.Equal(t, "✗", StatusIcon("lost"))
	assert.Equal(t, "·", StatusIcon("whatever"))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "Not started", StatusName("not_started"))
	assert.Equal(t, "In progress", StatusName("in_progress"))
	assert.Equal(t, "Draft", StatusName("draft"))
	assert.Equal(t, "", StatusName(""))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", RelativeTime(now.Add(-5*time.Minute)))
	assert.Equal(t, "1h ago", RelativeTime(now.Add(-90*time.Minute)))
	assert.Equal(t, "3d ago", RelativeTime(now.Add(-3*24*time.Hour)))
	assert.Equal(t, "2w ago", RelativeTime(now.Add(-15*24*time.Hour)))
}

func TestTimestamp(t *testing.T) {
	recent := time.Now().Add(-10 * time.Minute).Format(time.RFC3339)
	assert.Equal(t, "10m ago", Timestamp(recent))
	assert.Equal(t, "", Timestamp(""))
	assert.Equal(t, "not a date", Timestamp("not a date"))
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "", DueLabel(""))
	assert.Equal(t, "bogus", DueLabel("bogus"))

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "today", DueLabel(today))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a long s…", Truncate("a long string", 9))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<p>Hello <strong>world</strong></p>"))
	assert.Equal(t, "plain", StripHTML("plain"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello wo…", Excerpt("<p>Hello world</p>", 9))
}

func TestScore(t *testing.T) {
	assert.Equal(t, "85/100", Score(85))
}
