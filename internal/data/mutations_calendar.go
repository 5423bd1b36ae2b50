package data

import (
	"context"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/calendar"
	"github.com/agencydesk/agencydesk/internal/models"
)

// CalendarWriteMutation replaces the calendar document with a new
// version produced by a keyed edit (add, update, remove, duplicate).
// The whole document travels on every write because the backend has no
// per-entry endpoints; entry ids are stripped at the wire boundary.
type CalendarWriteMutation struct {
	Entries []models.CalendarEntry // the full post-edit document, ids assigned
	Client  *api.Client
}

// ApplyLocally swaps in the post-edit document.
func (m CalendarWriteMutation) ApplyLocally([]models.CalendarEntry) []models.CalendarEntry {
	return m.Entries
}

// ApplyRemotely writes the positional array back.
func (m CalendarWriteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Calendar().Put(ctx, calendar.StripIDs(m.Entries))
}

// IsReflectedIn compares wire fields positionally; entry ids are local
// and never match across a round-trip.
func (m CalendarWriteMutation) IsReflectedIn(remote []models.CalendarEntry) bool {
	if len(remote) != len(m.Entries) {
		return false
	}
	for i := range remote {
		if remote[i].Platform != m.Entries[i].Platform ||
			remote[i].Caption != m.Entries[i].Caption ||
			remote[i].ScheduledAt != m.Entries[i].ScheduledAt ||
			remote[i].Status != m.Entries[i].Status {
			return false
		}
	}
	return true
}
