// Package calendar implements keyed editing of the social-media content
// calendar. The backend stores the calendar as one array-valued document
// whose entries have no server ids: identity on the wire is positional.
// This package assigns a stable EntryID to each entry as it enters the
// app and keys every edit on it, so removing entry 2 while an edit of
// entry 4 is in flight still targets the right rows.
package calendar

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// NewEntryID returns a fresh random entry id.
func NewEntryID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("reading random entry id: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// AssignIDs returns a copy of entries with an EntryID on every entry
// that lacks one; entries that already carry an id keep it. The wire
// never carries ids, so refetches must go through CarryIDs instead to
// avoid re-keying rows a view is already tracking.
func AssignIDs(entries []models.CalendarEntry) []models.CalendarEntry {
	out := make([]models.CalendarEntry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].EntryID == "" {
			out[i].EntryID = NewEntryID()
		}
	}
	return out
}

// CarryIDs keys a freshly fetched document against the previous one.
// Each fetched entry takes the id of the first unconsumed previous
// entry with identical content; entries with no match (new rows, or
// rows whose content changed remotely) get a fresh id. This keeps ids
// stable across revalidation so an open edit form still targets the
// row it was opened on.
func CarryIDs(prev, fetched []models.CalendarEntry) []models.CalendarEntry {
	out := make([]models.CalendarEntry, len(fetched))
	copy(out, fetched)
	consumed := make([]bool, len(prev))
	for i := range out {
		if out[i].EntryID != "" {
			continue
		}
		for j := range prev {
			if consumed[j] || prev[j].EntryID == "" {
				continue
			}
			if sameContent(prev[j], out[i]) {
				out[i].EntryID = prev[j].EntryID
				consumed[j] = true
				break
			}
		}
		if out[i].EntryID == "" {
			out[i].EntryID = NewEntryID()
		}
	}
	return out
}

// sameContent compares two entries ignoring their local ids.
func sameContent(a, b models.CalendarEntry) bool {
	a.EntryID, b.EntryID = "", ""
	return a == b
}

// StripIDs returns a copy of entries with EntryID cleared, ready for
// the positional wire format.
func StripIDs(entries []models.CalendarEntry) []models.CalendarEntry {
	out := make([]models.CalendarEntry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].EntryID = ""
	}
	return out
}

// IndexOf returns the position of the entry with the given id, or -1.
func IndexOf(entries []models.CalendarEntry, entryID string) int {
	for i, e := range entries {
		if e.EntryID == entryID {
			return i
		}
	}
	return -1
}

// Add appends a new entry, assigning it an id if needed, and returns
// the new document.
func Add(entries []models.CalendarEntry, entry models.CalendarEntry) []models.CalendarEntry {
	if entry.EntryID == "" {
		entry.EntryID = NewEntryID()
	}
	out := make([]models.CalendarEntry, len(entries), len(entries)+1)
	copy(out, entries)
	return append(out, entry)
}

// Update replaces the entry with updated's EntryID, keeping its
// position. On an unknown id it returns the document unchanged and
// false; callers must not write the document back in that case, or a
// missed edit would silently overwrite remote changes.
func Update(entries []models.CalendarEntry, updated models.CalendarEntry) ([]models.CalendarEntry, bool) {
	i := IndexOf(entries, updated.EntryID)
	if i < 0 {
		return entries, false
	}
	out := make([]models.CalendarEntry, len(entries))
	copy(out, entries)
	out[i] = updated
	return out, true
}

// Remove deletes the entry with the given id. On an unknown id it
// returns the document unchanged and false.
func Remove(entries []models.CalendarEntry, entryID string) ([]models.CalendarEntry, bool) {
	i := IndexOf(entries, entryID)
	if i < 0 {
		return entries, false
	}
	out := make([]models.CalendarEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...), true
}

// Duplicate inserts a copy of the entry with the given id directly
// after the original. The copy gets a fresh EntryID and is returned
// alongside the new document so callers can select or edit it.
func Duplicate(entries []models.CalendarEntry, entryID string) ([]models.CalendarEntry, models.CalendarEntry, bool) {
	i := IndexOf(entries, entryID)
	if i < 0 {
		return entries, models.CalendarEntry{}, false
	}
	cp := entries[i]
	cp.EntryID = NewEntryID()
	out := make([]models.CalendarEntry, 0, len(entries)+1)
	out = append(out, entries[:i+1]...)
	out = append(out, cp)
	out = append(out, entries[i+1:]...)
	return out, cp, true
}
