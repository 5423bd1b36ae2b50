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

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 10, Title: "Draft campaign brief", Assignee: "Dana", DueOn: "2026-09-05", Status: models.TaskNotStarted},
		{ID: 11, Title: "Review ad copy", Status: models.TaskInProgress},
		{ID: 12, Title: "Send invoices", Status: models.TaskCompleted},
	}
}

func testTasksView() *Tasks {
	v := NewTasks(workspace.NewTestSession())
	v.SetSize(80, 24)
	v.pool.Set(api.Page[models.Task]{
		Results: sampleTasks(),
		Meta:    api.PageMeta{Count: 3, NumPages: 1, CurrentPage: 1},
	})
	v.adoptSnapshot()
	return v
}

func TestTasks_AdoptsCachedPage(t *testing.T) {
	v := testTasksView()

	assert.False(t, v.loading)
	assert.Equal(t, 3, v.list.Len())
	sel := v.list.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "10", sel.ID)
	assert.Contains(t, sel.Title, "Draft campaign brief")
	assert.Contains(t, sel.Description, "Dana")
}

func TestTasks_CompleteOptimistic(t *testing.T) {
	v := testTasksView()

	cmd := v.handleKey(runeKey('c'))
	require.NotNil(t, cmd)

	snap := v.pool.Get()
	require.True(t, snap.HasData)
	assert.Equal(t, models.TaskCompleted, snap.Data.Results[0].Status)
	assert.Equal(t, "Completed", v.pendingAction)
}

func TestTasks_NewOpensForm(t *testing.T) {
	v := testTasksView()

	cmd := v.handleKey(runeKey('n'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.True(t, v.InputActive())
	assert.Equal(t, models.TaskNotStarted, v.coord.Record().Status)
}

func TestTasks_DeleteConfirmThenApply(t *testing.T) {
	v := testTasksView()

	v.handleKey(runeKey('x'))
	assert.Equal(t, action.PhaseConfirmDelete, v.coord.Phase())

	cmd := v.handleKey(enterKey())
	require.NotNil(t, cmd)
	assert.Len(t, v.pool.Get().Data.Results, 2)
	assert.Equal(t, 2, v.list.Len())
}

func TestTasks_PagerStatus(t *testing.T) {
	v := testTasksView()
	assert.Equal(t, "page 1/1 · 3 tasks", v.PagerStatus())
}

func TestTasks_SaveFailureReplacesCompletedForm(t *testing.T) {
	v := testTasksView()

	v.handleKey(runeKey('n'))
	require.Equal(t, action.PhaseOpen, v.coord.Phase())
	task := v.coord.Record()
	task.Title = "Schedule kickoff call"
	v.coord.SetRecord(task)

	v.form.State = huh.StateCompleted
	cmd := v.coord.Submit(v.session.Context(), func(context.Context, models.Task) error {
		return errors.New("backend rejected the task")
	})
	_, fold := v.Update(runCmd(t, cmd))
	v.Update(runCmd(t, fold))

	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.NotEqual(t, huh.StateCompleted, v.form.State)
	assert.Equal(t, "Schedule kickoff call", v.formTitle)

	v.Update(noopMsg{})
	assert.Equal(t, action.PhaseOpen, v.coord.Phase(), "a stray message must not resubmit")
}
