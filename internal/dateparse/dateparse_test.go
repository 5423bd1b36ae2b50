package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference time for all tests: Wednesday, 2026-09-02.
var ref = time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)

func TestParseFrom(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"today", "2026-09-02"},
		{"TODAY", "2026-09-02"},
		{"Tomorrow", "2026-09-03"},

		{"next week", "2026-09-09"},
		{"next month", "2026-10-02"},

		{"eow", "2026-09-04"}, // Friday of this week
		{"end of week", "2026-09-04"},
		{"eom", "2026-09-30"},
		{"end of month", "2026-09-30"},

		// Weekdays from Wednesday. Same day rolls to next week.
		{"thursday", "2026-09-03"},
		{"thu", "2026-09-03"},
		{"friday", "2026-09-04"},
		{"monday", "2026-09-07"},
		{"wednesday", "2026-09-09"},

		// "next X" is the occurrence after this week's, except same day.
		{"next friday", "2026-09-11"},
		{"next wednesday", "2026-09-09"},

		{"+1", "2026-09-03"},
		{"+10", "2026-09-12"},
		{"in 1 day", "2026-09-03"},
		{"in 3 days", "2026-09-05"},
		{"in 2 weeks", "2026-09-16"},

		{"2026-12-24", "2026-12-24"},

		// Unrecognized input passes through for the API to reject.
		{"someday", "someday"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseFrom(tt.input, ref), "input %q", tt.input)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("today"))
	assert.True(t, IsValid("2026-09-02"))
	assert.False(t, IsValid("someday"))
	assert.False(t, IsValid(""))
}

func TestParseStampFrom(t *testing.T) {
	got, ok := ParseStampFrom("tomorrow 14:30", ref)
	require.True(t, ok)
	assert.Equal(t, "2026-09-03T14:30:00Z", got)

	// Date without a clock time defaults to 09:00.
	got, ok = ParseStampFrom("fri", ref)
	require.True(t, ok)
	assert.Equal(t, "2026-09-04T09:00:00Z", got)

	got, ok = ParseStampFrom("2026-10-01 08:15", ref)
	require.True(t, ok)
	assert.Equal(t, "2026-10-01T08:15:00Z", got)
}

func TestParseStampRFC3339Passthrough(t *testing.T) {
	got, ok := ParseStampFrom("2026-09-05T10:00:00+02:00", ref)
	require.True(t, ok)
	assert.Equal(t, "2026-09-05T10:00:00+02:00", got)
}

func TestParseStampRejectsGarbage(t *testing.T) {
	_, ok := ParseStampFrom("whenever", ref)
	assert.False(t, ok)

	_, ok = ParseStampFrom("tomorrow 25:99", ref)
	assert.False(t, ok)
}
