// Package format provides formatting helpers for TUI components.
package format

import (
	"fmt"
	"time"
)

// RelativeTime formats a time as a relative duration (e.g., "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	}
	if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
	if diff < 30*24*time.Hour {
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
	if diff < 365*24*time.Hour {
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1mo ago"
		}
		return fmt.Sprintf("%dmo ago", months)
	}

	years := int(diff.Hours() / 24 / 365)
	if years == 1 {
		return "1y ago"
	}
	return fmt.Sprintf("%dy ago", years)
}

// Timestamp renders an RFC 3339 timestamp from the backend as a
// relative duration, or returns the raw string when it does not parse.
func Timestamp(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return RelativeTime(t)
}

// DueLabel renders a YYYY-MM-DD due date relative to today: "today",
// "tomorrow", "3d overdue", "due in 5d", or the raw date when it does
// not parse.
func DueLabel(due string) string {
	if due == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", due)
	if err != nil {
		return due
	}
	today := time.Now().Truncate(24 * time.Hour)
	days := int(d.Sub(today).Hours() / 24)
	switch {
	case days < -1:
		return fmt.Sprintf("%dd overdue", -days)
	case days == -1:
		return "1d overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("due in %dd", days)
	}
}
