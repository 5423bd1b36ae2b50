// Package dateparse provides natural language date parsing for due
// dates and calendar scheduling. "tomorrow", "fri", "+3", and
// "in 2 weeks" all resolve against a reference time.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	inDaysPattern  = regexp.MustCompile(`^in (\d+) days?$`)
	inWeeksPattern = regexp.MustCompile(`^in (\d+) weeks?$`)
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// Parse resolves a natural language date to YYYY-MM-DD. Unrecognized
// input passes through unchanged so the API can reject it.
func Parse(input string) string {
	return ParseFrom(input, time.Now())
}

// ParseFrom parses relative to a reference time, for tests and for
// anchoring a whole batch of dates to one moment.
func ParseFrom(input string, now time.Time) string {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "today":
		return formatDate(now)
	case "tomorrow":
		return formatDate(now.AddDate(0, 0, 1))
	case "next week":
		return formatDate(now.AddDate(0, 0, 7))
	case "next month":
		return formatDate(now.AddDate(0, 1, 0))
	case "end of week", "eow":
		return formatDate(nextWeekday(now, time.Friday, false))
	case "end of month", "eom":
		year, month, _ := now.Date()
		return formatDate(time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1))
	}

	if day, ok := weekdays[strings.TrimPrefix(input, "next ")]; ok {
		return formatDate(nextWeekday(now, day, strings.HasPrefix(input, "next ")))
	}

	if strings.HasPrefix(input, "+") {
		if days, err := strconv.Atoi(input[1:]); err == nil {
			return formatDate(now.AddDate(0, 0, days))
		}
	}

	if m := inDaysPattern.FindStringSubmatch(input); m != nil {
		days, _ := strconv.Atoi(m[1])
		return formatDate(now.AddDate(0, 0, days))
	}
	if m := inWeeksPattern.FindStringSubmatch(input); m != nil {
		weeks, _ := strconv.Atoi(m[1])
		return formatDate(now.AddDate(0, 0, weeks*7))
	}

	return input
}

// ParseStamp resolves a date plus optional clock time to RFC3339, for
// calendar scheduling: "tomorrow 14:00", "fri 09:30", "2026-03-05",
// or a full RFC3339 stamp. A date without a time lands at 09:00 local.
func ParseStamp(input string) (string, bool) {
	return ParseStampFrom(input, time.Now())
}

// ParseStampFrom is ParseStamp relative to a reference time.
func ParseStampFrom(input string, now time.Time) (string, bool) {
	input = strings.TrimSpace(input)

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.Format(time.RFC3339), true
	}

	datePart := input
	clock := "09:00"
	if idx := strings.LastIndexByte(input, ' '); idx != -1 {
		if candidate := input[idx+1:]; strings.Contains(candidate, ":") {
			datePart = input[:idx]
			clock = candidate
		}
	}

	date := ParseFrom(datePart, now)
	if !datePattern.MatchString(date) {
		return "", false
	}
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return "", false
	}
	d, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return "", false
	}
	stamp := time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, now.Location())
	return stamp.Format(time.RFC3339), true
}

// IsValid reports whether the input resolves to a date.
func IsValid(input string) bool {
	return datePattern.MatchString(Parse(input))
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// nextWeekday returns the next occurrence of the target weekday. With
// forceNext ("next monday") the occurrence after this week's is used,
// except when today is the target day, where both forms mean 7 days out.
func nextWeekday(now time.Time, target time.Weekday, forceNext bool) time.Time {
	daysUntil := int(target - now.Weekday())
	sameDay := daysUntil == 0

	if daysUntil <= 0 {
		daysUntil += 7
	}
	if forceNext && !sameDay {
		daysUntil += 7
	}
	return now.AddDate(0, 0, daysUntil)
}
