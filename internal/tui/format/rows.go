package format

import (
	"fmt"
	"strings"
)

// StatusIcon returns a compact marker for a workflow status.
func StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "draft", "not_started", "new":
		return "○"
	case "review", "in_progress", "contacted", "scheduled":
		return "◐"
	case "published", "completed", "qualified", "posted", "active":
		return "●"
	case "lost", "inactive":
		return "✗"
	default:
		return "·"
	}
}

// StatusName returns a human-readable name for a workflow status.
func StatusName(status string) string {
	switch strings.ToLower(status) {
	case "not_started":
		return "Not started"
	case "in_progress":
		return "In progress"
	default:
		if status == "" {
			return ""
		}
		return strings.ToUpper(status[:1]) + status[1:]
	}
}

// Excerpt strips markup from content and truncates it for list rows.
func Excerpt(content string, maxLen int) string {
	return Truncate(StripHTML(content), maxLen)
}

// Truncate shortens a string to the specified length, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

// StripHTML removes HTML tags from a string and normalizes whitespace.
func StripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, c := range s {
		if c == '<' {
			inTag = true
			continue
		}
		if c == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(c)
		}
	}
	// Normalize whitespace
	return strings.Join(strings.Fields(result.String()), " ")
}

// Score renders a lead score out of 100.
func Score(score int) string {
	return fmt.Sprintf("%d/100", score)
}
