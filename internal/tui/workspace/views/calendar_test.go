package views

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/action"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
)

func sampleEntries() []models.CalendarEntry {
	return []models.CalendarEntry{
		{EntryID: "e1", Platform: "instagram", Caption: "Behind the scenes", ScheduledAt: "2026-09-03 10:00", Status: "scheduled"},
		{EntryID: "e2", Platform: "linkedin", Caption: "Case study teaser", ScheduledAt: "2026-09-04 09:00", Status: "posted"},
	}
}

func testCalendarView() *Calendar {
	v := NewCalendar(workspace.NewTestSession())
	v.SetSize(80, 24)
	v.pool.Set(sampleEntries())
	v.Init()
	return v
}

func TestCalendar_AdoptsCachedDocument(t *testing.T) {
	v := testCalendarView()

	assert.False(t, v.loading)
	assert.Equal(t, 2, v.list.Len())
	sel := v.list.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "e1", sel.ID)
	assert.Contains(t, sel.Description, "Behind the scenes")
	assert.Equal(t, "2026-09-03 10:00", sel.Extra)
}

func TestCalendar_NewOpensForm(t *testing.T) {
	v := testCalendarView()

	cmd := v.handleKey(runeKey('n'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.Empty(t, v.editID)
	assert.Equal(t, "instagram", v.formPlatform, "platform defaults for a blank entry")
	assert.Equal(t, "scheduled", v.formStatus)
}

func TestCalendar_EditPrefillsForm(t *testing.T) {
	v := testCalendarView()

	cmd := v.handleKey(runeKey('e'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	assert.Equal(t, "e1", v.editID)
	assert.Equal(t, "instagram", v.formPlatform)
	assert.Equal(t, "Behind the scenes", v.formCaption)
	assert.Equal(t, "2026-09-03 10:00", v.formScheduled)
}

func TestCalendar_DuplicateAppendsCopy(t *testing.T) {
	v := testCalendarView()

	cmd := v.handleKey(runeKey('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, "Duplicated", v.pendingAction)

	// The copy lands directly after the original.
	entries := v.pool.Get().Data
	require.Len(t, entries, 3)
	copied := entries[1]
	assert.Equal(t, "Behind the scenes", copied.Caption)
	assert.NotEqual(t, "e1", copied.EntryID, "the copy gets a fresh id")
	assert.Equal(t, "e2", entries[2].EntryID)
	assert.Equal(t, 3, v.list.Len())
}

func TestCalendar_RemoveConfirmThenApply(t *testing.T) {
	v := testCalendarView()

	v.handleKey(runeKey('x'))
	assert.Equal(t, action.PhaseConfirmDelete, v.coord.Phase())

	cmd := v.handleKey(runeKey('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, "Removed", v.pendingAction)

	entries := v.pool.Get().Data
	require.Len(t, entries, 1)
	assert.Equal(t, "e2", entries[0].EntryID)
	assert.Equal(t, 1, v.list.Len())
}

func TestCalendar_RemoveCancelled(t *testing.T) {
	v := testCalendarView()

	v.handleKey(runeKey('x'))
	v.handleKey(escKey())
	assert.Equal(t, action.PhaseClosed, v.coord.Phase())
	assert.Len(t, v.pool.Get().Data, 2)
}

func TestCalendar_SubmitEditReplacesEntry(t *testing.T) {
	v := testCalendarView()
	v.handleKey(runeKey('e'))

	v.formCaption = "Behind the scenes, extended cut"
	cmd := v.submitForm()
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseClosed, v.coord.Phase())
	assert.Nil(t, v.form)

	entries := v.pool.Get().Data
	require.Len(t, entries, 2)
	assert.Equal(t, "Behind the scenes, extended cut", entries[0].Caption)
	assert.Equal(t, "e1", entries[0].EntryID, "editing keeps the entry id")
}

func TestCalendar_SubmitCreateAppendsEntry(t *testing.T) {
	v := testCalendarView()
	v.handleKey(runeKey('n'))

	v.formPlatform = "tiktok"
	v.formCaption = "Office tour"
	v.formScheduled = "2026-09-10 12:00"
	cmd := v.submitForm()
	require.NotNil(t, cmd)

	entries := v.pool.Get().Data
	require.Len(t, entries, 3)
	added := entries[2]
	assert.Equal(t, "tiktok", added.Platform)
	assert.Equal(t, "Office tour", added.Caption)
	assert.NotEmpty(t, added.EntryID)
}

func TestCalendar_PagerStatus(t *testing.T) {
	v := testCalendarView()
	assert.Equal(t, "page 1/1 · 2 entries", v.PagerStatus())
}

func TestMatchCalendarEntry(t *testing.T) {
	entry := models.CalendarEntry{
		EntryID:  "e1",
		Platform: "instagram",
		Caption:  "Behind the scenes",
		Status:   "scheduled",
	}

	t.Run("search hits platform and caption", func(t *testing.T) {
		assert.True(t, matchCalendarEntry(entry, "insta", nil))
		assert.True(t, matchCalendarEntry(entry, "SCENES", nil))
		assert.False(t, matchCalendarEntry(entry, "tiktok", nil))
	})

	t.Run("empty search matches", func(t *testing.T) {
		assert.True(t, matchCalendarEntry(entry, "", nil))
	})

	t.Run("filters constrain", func(t *testing.T) {
		assert.True(t, matchCalendarEntry(entry, "", url.Values{"platform": {"Instagram"}}))
		assert.False(t, matchCalendarEntry(entry, "", url.Values{"platform": {"linkedin"}}))
		assert.False(t, matchCalendarEntry(entry, "", url.Values{"status": {"posted"}}))
	})
}

func TestCalendar_FilterNarrowsList(t *testing.T) {
	v := testCalendarView()

	v.ctrl.SetSearch("case study")
	v.syncList()

	assert.Equal(t, 1, v.list.Len())
	sel := v.list.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "e2", sel.ID)
}

func TestCalendar_EditTargetVanishedIsNotWrittenBack(t *testing.T) {
	v := testCalendarView()

	cmd := v.handleKey(runeKey('e'))
	require.NotNil(t, cmd)
	require.Equal(t, "e1", v.editID)

	// The document was revalidated while the form was open and the
	// edited row changed remotely, so it carries a different id now.
	rekeyed := []models.CalendarEntry{
		{EntryID: "z9", Platform: "instagram", Caption: "Rewritten elsewhere", Status: "scheduled"},
		{EntryID: "e2", Platform: "linkedin", Caption: "Case study teaser", ScheduledAt: "2026-09-04 09:00", Status: "posted"},
	}
	v.pool.Set(rekeyed)

	v.formCaption = "My stale edit"
	cmd = v.submitForm()
	require.NotNil(t, cmd)

	// No optimistic write happened: the document is untouched and the
	// edit state was discarded instead of mistargeting a row.
	assert.Equal(t, rekeyed, v.pool.Get().Data)
	assert.Empty(t, v.pendingAction)
	assert.Nil(t, v.form)
	assert.Empty(t, v.editID)
}
