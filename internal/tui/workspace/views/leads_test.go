package views

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/action"
	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
)

func sampleLeads() []models.Lead {
	return []models.Lead{
		{ID: 20, Name: "Acme Corp", Email: "hello@acme.test", Status: "new", Score: 85},
		{ID: 21, Name: "Globex", Source: "referral", Status: "contacted"},
	}
}

func testLeadsView() *Leads {
	v := NewLeads(workspace.NewTestSession())
	v.SetSize(80, 24)
	v.pool.Set(api.Page[models.Lead]{
		Results: sampleLeads(),
		Meta:    api.PageMeta{Count: 2, NumPages: 1, CurrentPage: 1},
	})
	v.adoptSnapshot()
	return v
}

func TestLeads_AdoptsCachedPage(t *testing.T) {
	v := testLeadsView()

	assert.False(t, v.loading)
	assert.Equal(t, 2, v.list.Len())
	sel := v.list.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "20", sel.ID)
	assert.Contains(t, sel.Title, "Acme Corp")
	assert.Contains(t, sel.Description, "hello@acme.test")
	assert.Contains(t, sel.Extra, "85")
}

func TestLeads_SourceInDescription(t *testing.T) {
	v := testLeadsView()
	items := v.list.Items()
	require.Len(t, items, 2)
	assert.Contains(t, items[1].Description, "referral")
}

func TestLeads_NewOpensForm(t *testing.T) {
	v := testLeadsView()

	cmd := v.handleKey(runeKey('n'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.Equal(t, "new", v.coord.Record().Status)
	assert.True(t, v.InputActive())
}

func TestLeads_DeleteConfirmThenApply(t *testing.T) {
	v := testLeadsView()

	v.handleKey(runeKey('x'))
	assert.Equal(t, action.PhaseConfirmDelete, v.coord.Phase())

	cmd := v.handleKey(runeKey('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, "Deleted", v.pendingAction)
	assert.Len(t, v.pool.Get().Data.Results, 1)
	assert.Equal(t, 1, v.list.Len())
}

func TestLeads_PagerStatus(t *testing.T) {
	v := testLeadsView()
	assert.Equal(t, "page 1/1 · 2 leads", v.PagerStatus())
}

func TestLeads_SaveFailureReplacesCompletedForm(t *testing.T) {
	v := testLeadsView()

	v.handleKey(runeKey('n'))
	require.Equal(t, action.PhaseOpen, v.coord.Phase())
	lead := v.coord.Record()
	lead.Name = "Initech"
	v.coord.SetRecord(lead)

	v.form.State = huh.StateCompleted
	cmd := v.coord.Submit(v.session.Context(), func(context.Context, models.Lead) error {
		return errors.New("backend rejected the lead")
	})
	_, fold := v.Update(runCmd(t, cmd))
	v.Update(runCmd(t, fold))

	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.NotEqual(t, huh.StateCompleted, v.form.State)
	assert.Equal(t, "Initech", v.formName)

	v.Update(noopMsg{})
	assert.Equal(t, action.PhaseOpen, v.coord.Phase(), "a stray message must not resubmit")
}
