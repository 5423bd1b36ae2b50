package workspace

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockView is a minimal View for router tests.
type mockView struct {
	title string
}

func (m *mockView) Init() tea.Cmd                           { return nil }
func (m *mockView) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m *mockView) View() string                            { return m.title }
func (m *mockView) Title() string                           { return m.title }
func (m *mockView) ShortHelp() []key.Binding                { return nil }
func (m *mockView) FullHelp() [][]key.Binding               { return nil }
func (m *mockView) SetSize(width, height int)               {}

func TestRouterEmpty(t *testing.T) {
	r := NewRouter()

	assert.Nil(t, r.Current())
	assert.Equal(t, Scope{}, r.CurrentScope())
	assert.Equal(t, 0, r.Depth())
	assert.False(t, r.CanGoBack())
	assert.Nil(t, r.Pop())
}

func TestRouterPushPop(t *testing.T) {
	r := NewRouter()
	root := &mockView{title: "Blog posts"}
	detail := &mockView{title: "Post"}

	r.ReplaceRoot(root, Scope{AccountID: "a1"})
	require.Same(t, root, r.Current())
	assert.False(t, r.CanGoBack())

	r.Push(detail, Scope{AccountID: "a1", RecordID: 42})
	require.Same(t, detail, r.Current())
	assert.Equal(t, int64(42), r.CurrentScope().RecordID)
	assert.Equal(t, 2, r.Depth())
	assert.True(t, r.CanGoBack())

	got := r.Pop()
	require.Same(t, root, got)
	assert.Equal(t, 1, r.Depth())
}

func TestRouterNeverPopsRoot(t *testing.T) {
	r := NewRouter()
	root := &mockView{title: "Tasks"}
	r.ReplaceRoot(root, Scope{})

	assert.Nil(t, r.Pop())
	require.Same(t, root, r.Current())
	assert.Equal(t, 1, r.Depth())
}

func TestRouterReplaceRootClearsStack(t *testing.T) {
	r := NewRouter()
	r.ReplaceRoot(&mockView{title: "Blog posts"}, Scope{})
	r.Push(&mockView{title: "Post"}, Scope{RecordID: 7})
	require.Equal(t, 2, r.Depth())

	leads := &mockView{title: "Leads"}
	r.ReplaceRoot(leads, Scope{AccountID: "a2"})

	assert.Equal(t, 1, r.Depth())
	require.Same(t, leads, r.Current())
	assert.Equal(t, "a2", r.CurrentScope().AccountID)
}

func TestRouterBreadcrumbs(t *testing.T) {
	r := NewRouter()
	r.ReplaceRoot(&mockView{title: "Blog posts"}, Scope{})
	r.Push(&mockView{title: "Launch announcement"}, Scope{RecordID: 3})

	assert.Equal(t, []string{"Blog posts", "Launch announcement"}, r.Breadcrumbs())
}
