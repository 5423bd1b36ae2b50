package workspace

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubView records forwarded messages and can simulate modal and
// input-capture states.
type stubView struct {
	mockView
	target   ViewTarget
	received []tea.Msg
	modal    bool
	capture  bool
	pager    string
}

func (s *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}

func (s *stubView) IsModal() bool       { return s.modal }
func (s *stubView) InputActive() bool   { return s.capture }
func (s *stubView) PagerStatus() string { return s.pager }

func viewTitle(target ViewTarget) string {
	switch target {
	case ViewTasks:
		return "Tasks"
	case ViewLeads:
		return "Leads"
	case ViewCalendar:
		return "Social calendar"
	case ViewBlogDetail:
		return "Post"
	default:
		return "Blog posts"
	}
}

func stubFactory(target ViewTarget, _ *Session, _ Scope) View {
	return &stubView{
		mockView: mockView{title: viewTitle(target)},
		target:   target,
	}
}

func testWorkspace(initial ViewTarget) *Workspace {
	w := New(NewTestSession(), stubFactory, initial)
	w.Init()
	w.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return w
}

func currentStub(t *testing.T, w *Workspace) *stubView {
	t.Helper()
	v, ok := w.router.Current().(*stubView)
	require.True(t, ok)
	return v
}

func TestRootTarget(t *testing.T) {
	assert.Equal(t, ViewBlogs, rootTarget(""))
	assert.Equal(t, ViewBlogs, rootTarget("blogs"))
	assert.Equal(t, ViewTasks, rootTarget("tasks"))
	assert.Equal(t, ViewLeads, rootTarget("leads"))
	assert.Equal(t, ViewCalendar, rootTarget("calendar"))
	assert.Equal(t, ViewBlogs, rootTarget("bogus"))
}

func TestWorkspace_InitInstallsRoot(t *testing.T) {
	w := testWorkspace(ViewTasks)

	assert.Equal(t, 1, w.router.Depth())
	assert.Equal(t, ViewTasks, currentStub(t, w).target)
}

func TestWorkspace_NumberKeysSwitchRoots(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, ViewLeads, currentStub(t, w).target)
	assert.Equal(t, 1, w.router.Depth())

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	assert.Equal(t, ViewCalendar, currentStub(t, w).target)
}

func TestWorkspace_NavigateAndBack(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	scope := Scope{AccountID: "acct-test", RecordID: 7}
	w.Update(NavigateMsg{Target: ViewBlogDetail, Scope: scope})
	assert.Equal(t, 2, w.router.Depth())
	assert.Equal(t, ViewBlogDetail, currentStub(t, w).target)
	assert.Equal(t, int64(7), w.router.CurrentScope().RecordID)

	w.Update(NavigateBackMsg{})
	assert.Equal(t, 1, w.router.Depth())
	assert.Equal(t, ViewBlogs, currentStub(t, w).target)

	// The root regains focus on the way back.
	assert.Contains(t, currentStub(t, w).received, tea.Msg(FocusMsg{}))
}

func TestWorkspace_EscAtRootQuits(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, w.quitting)
}

func TestWorkspace_EscPopsDetailFirst(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	w.Update(NavigateMsg{Target: ViewBlogDetail, Scope: Scope{RecordID: 1}})

	w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, w.router.Depth())
	assert.False(t, w.quitting)
}

func TestWorkspace_CtrlCAlwaysQuits(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	currentStub(t, w).modal = true

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWorkspace_ModalViewReceivesGlobalKeys(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	v := currentStub(t, w)
	v.modal = true

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.False(t, w.quitting)
	assert.Contains(t, v.received, tea.Msg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}))
}

func TestWorkspace_InputCaptureForwardsKeys(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	v := currentStub(t, w)
	v.capture = true

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	assert.Equal(t, ViewBlogs, currentStub(t, w).target, "screen keys are plain text while typing")
}

func TestWorkspace_HelpOverlay(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, w.showHelp)
	assert.Contains(t, w.View(), "Keyboard shortcuts")

	// q closes the overlay instead of quitting.
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.False(t, w.showHelp)
	assert.False(t, w.quitting)
}

func TestWorkspace_StatusMsgFlashes(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	_, cmd := w.Update(StatusMsg{Text: "Published"})
	require.NotNil(t, cmd)
	assert.True(t, w.statusBar.Flashing())
	assert.Contains(t, w.View(), "Published")
}

func TestWorkspace_ErrorMsgFlashesWithContext(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	w.Update(ErrorMsg{Err: assert.AnError, Context: "saving blog post"})
	assert.Contains(t, w.View(), "saving blog post")
}

func TestWorkspace_RefreshForwardedToView(t *testing.T) {
	w := testWorkspace(ViewBlogs)

	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Contains(t, currentStub(t, w).received, tea.Msg(RefreshMsg{}))
}

func TestWorkspace_BreadcrumbsInView(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	w.Update(NavigateMsg{Target: ViewBlogDetail, Scope: Scope{RecordID: 1}})

	assert.Contains(t, w.View(), "Blog posts › Post")
}

func TestWorkspace_PagerShownInStatusBar(t *testing.T) {
	w := testWorkspace(ViewBlogs)
	currentStub(t, w).pager = "page 2/5 · 120 posts"

	assert.Contains(t, w.View(), "page 2/5")
}
