package views

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencydesk/agencydesk/internal/action"
	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/data"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func escKey() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }

// runCmd executes a command and returns the message it produces.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func samplePosts() []models.BlogPost {
	return []models.BlogPost{
		{ID: 1, Title: "Launch announcement", Status: models.BlogDraft, Keywords: []string{"launch"}},
		{ID: 2, Title: "Quarterly recap", Status: models.BlogPublished, Keywords: []string{"recap", "q3"}},
		{ID: 3, Title: "Holiday campaign", Status: models.BlogDraft},
	}
}

func testBlogsView() *Blogs {
	v := NewBlogs(workspace.NewTestSession())
	v.SetSize(80, 24)
	v.pool.Set(api.Page[models.BlogPost]{
		Results: samplePosts(),
		Meta:    api.PageMeta{Count: 3, NumPages: 1, CurrentPage: 1},
	})
	v.adoptSnapshot()
	return v
}

func TestBlogs_AdoptsCachedPage(t *testing.T) {
	v := testBlogsView()

	assert.False(t, v.loading)
	assert.Equal(t, 3, v.list.Len())
	sel := v.list.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, "1", sel.ID)
	assert.Contains(t, sel.Title, "Launch announcement")
	assert.Equal(t, "launch", sel.Description)
}

func TestBlogs_FreshSnapshotSkipsFetch(t *testing.T) {
	v := testBlogsView()
	assert.Nil(t, v.Init(), "fresh cached data needs no fetch")
}

func TestBlogs_PagerStatus(t *testing.T) {
	v := testBlogsView()
	assert.Equal(t, "page 1/1 · 3 posts", v.PagerStatus())
}

func TestBlogs_EnterNavigatesToDetail(t *testing.T) {
	v := testBlogsView()

	msg := runCmd(t, v.handleKey(enterKey()))
	nav, ok := msg.(workspace.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, workspace.ViewBlogDetail, nav.Target)
	assert.Equal(t, int64(1), nav.Scope.RecordID)
}

func TestBlogs_NewOpensForm(t *testing.T) {
	v := testBlogsView()

	cmd := v.handleKey(runeKey('n'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.True(t, v.InputActive())
	assert.True(t, v.IsModal())
	assert.Equal(t, models.BlogDraft, v.coord.Record().Status)
}

func TestBlogs_EscClosesForm(t *testing.T) {
	v := testBlogsView()
	v.handleKey(runeKey('n'))

	v.handleKey(escKey())
	assert.Equal(t, action.PhaseClosed, v.coord.Phase())
	assert.Nil(t, v.form)
	assert.False(t, v.IsModal())
}

func TestBlogs_PublishOptimistic(t *testing.T) {
	v := testBlogsView()

	cmd := v.handleKey(runeKey('p'))
	require.NotNil(t, cmd, "publish returns the remote apply command")

	// The draft under the cursor flips to published immediately.
	snap := v.pool.Get()
	require.True(t, snap.HasData)
	assert.Equal(t, models.BlogPublished, snap.Data.Results[0].Status)
	assert.Equal(t, "Published", v.pendingAction)
}

func TestBlogs_DeleteConfirmThenApply(t *testing.T) {
	v := testBlogsView()

	v.handleKey(runeKey('x'))
	assert.Equal(t, action.PhaseConfirmDelete, v.coord.Phase())
	assert.True(t, v.IsModal())

	cmd := v.handleKey(runeKey('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, action.PhaseClosed, v.coord.Phase())

	// Optimistic removal from the cached page.
	snap := v.pool.Get()
	assert.Len(t, snap.Data.Results, 2)
	assert.Equal(t, 2, snap.Data.Meta.Count)
	assert.Equal(t, 2, v.list.Len())
}

func TestBlogs_DeleteCancelled(t *testing.T) {
	v := testBlogsView()

	v.handleKey(runeKey('x'))
	v.handleKey(escKey())
	assert.Equal(t, action.PhaseClosed, v.coord.Phase())
	assert.Len(t, v.pool.Get().Data.Results, 3)
}

func TestBlogs_MutationAppliedFlashes(t *testing.T) {
	v := testBlogsView()
	v.pendingAction = "Published"

	_, cmd := v.Update(data.MutationAppliedMsg{Key: v.pool.Key()})
	msg := runCmd(t, cmd)
	status, ok := msg.(workspace.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, "Published", status.Text)
	assert.False(t, status.IsError)
	assert.Empty(t, v.pendingAction)
}

func TestBlogs_MutationAppliedOtherPoolIgnored(t *testing.T) {
	v := testBlogsView()
	v.pendingAction = "Published"

	_, cmd := v.Update(data.MutationAppliedMsg{Key: "tasks:list:other"})
	assert.Nil(t, cmd)
	assert.Equal(t, "Published", v.pendingAction)
}

func TestBlogs_ToggleSelectMarksRow(t *testing.T) {
	v := testBlogsView()

	v.handleKey(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 1, v.ctrl.SelectedCount())
	require.NotNil(t, v.list.Selected())
	assert.True(t, v.list.Selected().Marked)

	v.handleKey(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 0, v.ctrl.SelectedCount())
}

func TestBlogs_SelectAllToggles(t *testing.T) {
	v := testBlogsView()

	v.handleKey(runeKey('a'))
	assert.Equal(t, 3, v.ctrl.SelectedCount())

	v.handleKey(runeKey('a'))
	assert.Equal(t, 0, v.ctrl.SelectedCount())
}

func TestBlogs_UntitledFallback(t *testing.T) {
	v := testBlogsView()
	v.pool.Set(api.Page[models.BlogPost]{
		Results: []models.BlogPost{{ID: 9, Status: models.BlogDraft}},
		Meta:    api.PageMeta{Count: 1, NumPages: 1, CurrentPage: 1},
	})
	v.adoptSnapshot()

	require.NotNil(t, v.list.Selected())
	assert.Contains(t, v.list.Selected().Title, "(untitled)")
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"seo", "launch"}, splitKeywords("seo, launch"))
	assert.Equal(t, []string{"one"}, splitKeywords("  one  ,, "))
	assert.Nil(t, splitKeywords(""))
}

// noopMsg is an arbitrary non-key message, like the tick traffic a live
// program delivers between keystrokes.
type noopMsg struct{}

func TestBlogs_SaveFailureRequiresResubmit(t *testing.T) {
	v := testBlogsView()

	v.handleKey(runeKey('n'))
	require.Equal(t, action.PhaseOpen, v.coord.Phase())
	v.formTitle = "Launch recap"
	post := v.coord.Record()
	post.Title = "Launch recap"
	v.coord.SetRecord(post)

	// The form finished, the save went out and failed.
	v.form.State = huh.StateCompleted
	saves := 0
	cmd := v.coord.Submit(v.session.Context(), func(context.Context, models.BlogPost) error {
		saves++
		return errors.New("backend rejected the post")
	})
	carrier := runCmd(t, cmd)
	assert.Equal(t, 1, saves)

	_, fold := v.Update(carrier)
	errMsg := runCmd(t, fold)
	require.IsType(t, action.SubmitErrorMsg{}, errMsg)
	v.Update(errMsg)

	// The modal is back with the typed values, but the completed form was
	// replaced, so it cannot hand the save straight back to Submit.
	assert.Equal(t, action.PhaseOpen, v.coord.Phase())
	require.NotNil(t, v.form)
	assert.NotEqual(t, huh.StateCompleted, v.form.State)
	assert.Equal(t, "Launch recap", v.formTitle)

	v.Update(noopMsg{})
	assert.Equal(t, action.PhaseOpen, v.coord.Phase(), "a stray message must not resubmit")
	assert.Equal(t, 1, saves)
}
