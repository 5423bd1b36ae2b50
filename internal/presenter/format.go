package presenter

import (
	"fmt"
	"strings"
	"time"
)

// FormatField formats a field value according to its FieldSpec.
func FormatField(spec FieldSpec, val any, locale Locale) string {
	switch spec.Format {
	case "status":
		return formatStatus(spec, val)
	case "date":
		return formatDate(val, locale)
	case "relative_time":
		return formatRelativeTime(val)
	case "count":
		return formatCount(val, locale)
	case "list":
		return formatList(val)
	default:
		return formatText(val)
	}
}

// formatStatus maps a raw status value through the field's label table, so
// "awaiting_feedback" renders as "Awaiting feedback".
func formatStatus(spec FieldSpec, val any) string {
	raw := formatText(val)
	if label, ok := spec.Labels[raw]; ok {
		return label
	}
	return raw
}

func formatDate(val any, locale Locale) string {
	str, ok := val.(string)
	if !ok || str == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return locale.FormatDate(t.Local())
	}
	if t, err := time.Parse("2006-01-02", str); err == nil {
		return locale.FormatDate(t)
	}
	return str
}

func formatRelativeTime(val any) string {
	str, ok := val.(string)
	if !ok || str == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return formatDate(val, NewLocale(""))
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		n := int(d.Minutes())
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	case d < 24*time.Hour:
		n := int(d.Hours())
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	case d < 48*time.Hour:
		return "yesterday"
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return formatDate(val, NewLocale(""))
	}
}

func formatCount(val any, locale Locale) string {
	switch v := val.(type) {
	case float64:
		return locale.FormatCount(int64(v))
	case int:
		return locale.FormatCount(int64(v))
	case int64:
		return locale.FormatCount(v)
	default:
		return formatText(val)
	}
}

// formatList renders a slice value ("keywords", "channels") as a
// comma-joined string.
func formatList(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatText(item))
		}
		return strings.Join(items, ", ")
	default:
		return formatText(val)
	}
}

func formatText(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	case []any, []string:
		return formatList(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsOverdue reports whether a date value is before the start of today
// in local time. Handles date-only and RFC3339 values.
func IsOverdue(val any) bool {
	str, ok := val.(string)
	if !ok || str == "" {
		return false
	}

	now := time.Now()
	todayLocal := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t.In(now.Location()).Before(todayLocal)
	}
	// Date-only values carry no timezone; parse in local time.
	if t, err := time.ParseInLocation("2006-01-02", str, now.Location()); err == nil {
		return t.Before(todayLocal)
	}
	return false
}
