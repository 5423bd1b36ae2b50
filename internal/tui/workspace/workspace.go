package workspace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/tui"
	"github.com/agencydesk/agencydesk/internal/tui/workspace/chrome"
)

// chromeHeight is the vertical space reserved for the breadcrumb line,
// the divider, and the status bar.
const chromeHeight = 3

// ViewFactory builds views for navigation targets. It is supplied by
// the command that launches the workspace, which keeps this package
// free of view construction.
type ViewFactory func(target ViewTarget, session *Session, scope Scope) View

// Workspace is the root tea.Model: chrome around a navigation stack of
// views, with number keys switching between the root screens.
type Workspace struct {
	session     *Session
	router      *Router
	styles      *tui.Styles
	keys        GlobalKeyMap
	viewFactory ViewFactory
	initial     ViewTarget

	statusBar chrome.StatusBar
	help      chrome.Help

	showHelp bool
	quitting bool

	width, height int
}

// New creates a workspace rooted at the given initial screen.
func New(session *Session, factory ViewFactory, initial ViewTarget) *Workspace {
	styles := session.Styles()
	return &Workspace{
		session:     session,
		router:      NewRouter(),
		styles:      styles,
		keys:        DefaultGlobalKeyMap(),
		viewFactory: factory,
		initial:     initial,
		statusBar:   chrome.NewStatusBar(styles),
		help:        chrome.NewHelp(styles),
	}
}

// Run launches the workspace program and blocks until it exits.
// Screen selects the initial root: "blogs" (default), "tasks",
// "leads", or "calendar".
func Run(ctx context.Context, client *api.Client, screen string, factory ViewFactory) error {
	session := NewSession(client, client.AccountID())
	defer session.Shutdown()

	w := New(session, factory, rootTarget(screen))

	keys := DefaultGlobalKeyMap()
	overridePath := filepath.Join(filepath.Dir(config.GlobalPath()), "keybindings.json")
	if overrides, err := LoadKeyOverrides(overridePath); err == nil && len(overrides) > 0 {
		ApplyOverrides(&keys, overrides)
	}
	w.keys = keys

	p := tea.NewProgram(w,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// rootTarget maps a --screen flag value to a root view target.
func rootTarget(screen string) ViewTarget {
	switch screen {
	case "tasks":
		return ViewTasks
	case "leads":
		return ViewLeads
	case "calendar":
		return ViewCalendar
	default:
		return ViewBlogs
	}
}

// Init implements tea.Model.
func (w *Workspace) Init() tea.Cmd {
	scope := w.session.Scope()
	view := w.viewFactory(w.initial, w.session, scope)
	w.router.ReplaceRoot(view, scope)
	w.statusBar.SetAccount(w.session.AccountID())
	w.syncChrome()
	return tea.Batch(view.Init(), tea.SetWindowTitle("agencydesk"))
}

// Update implements tea.Model.
func (w *Workspace) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.relayout()
		return w, nil

	case tea.KeyMsg:
		return w, w.handleKey(msg)

	case NavigateMsg:
		return w, w.navigate(msg.Target, msg.Scope)

	case NavigateBackMsg:
		return w, w.goBack()

	case StatusMsg:
		return w, w.statusBar.Flash(msg.Text, msg.IsError)

	case ErrorMsg:
		text := msg.Err.Error()
		if msg.Context != "" {
			text = msg.Context + ": " + text
		}
		return w, w.statusBar.Flash(text, true)

	case ToggleHelpMsg:
		w.toggleHelp()
		return w, nil

	case RefreshMsg:
		return w, w.forward(msg)
	}

	// Flash expiry ticks.
	w.statusBar.Update(msg)

	// Everything else (pool updates, spinner ticks, detail loads) goes
	// to the active view.
	return w, w.forward(msg)
}

// forward routes a message to the current view and refreshes chrome
// that depends on view state.
func (w *Workspace) forward(msg tea.Msg) tea.Cmd {
	view := w.router.Current()
	if view == nil {
		return nil
	}
	updated, cmd := view.Update(msg)
	w.replaceCurrentView(updated)
	return cmd
}

func (w *Workspace) handleKey(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c always quits.
	if msg.String() == "ctrl+c" {
		w.quitting = true
		return tea.Quit
	}

	if w.showHelp {
		if w.help.Update(msg) {
			w.showHelp = false
		}
		return nil
	}

	view := w.router.Current()

	// While a view is capturing text (a filter or a form field) or has
	// a modal open, keys belong to the view.
	if view != nil {
		inputActive := false
		if ic, ok := view.(InputCapturer); ok {
			inputActive = ic.InputActive()
		}
		modal := false
		if ma, ok := view.(ModalActive); ok {
			modal = ma.IsModal()
		}
		if inputActive || modal {
			return w.forward(msg)
		}
	}

	switch {
	case key.Matches(msg, w.keys.Quit):
		w.quitting = true
		return tea.Quit

	case key.Matches(msg, w.keys.Help):
		w.toggleHelp()
		return nil

	case key.Matches(msg, w.keys.Back):
		if w.router.CanGoBack() {
			return w.goBack()
		}
		w.quitting = true
		return tea.Quit

	case key.Matches(msg, w.keys.Refresh):
		return w.forward(RefreshMsg{})

	case key.Matches(msg, w.keys.Search):
		if f, ok := view.(Filterable); ok {
			f.StartFilter()
			w.syncChrome()
			return nil
		}

	case key.Matches(msg, w.keys.Blogs):
		return w.switchRoot(ViewBlogs)

	case key.Matches(msg, w.keys.Tasks):
		return w.switchRoot(ViewTasks)

	case key.Matches(msg, w.keys.Leads):
		return w.switchRoot(ViewLeads)

	case key.Matches(msg, w.keys.Calendar):
		return w.switchRoot(ViewCalendar)
	}

	return w.forward(msg)
}

// switchRoot replaces the whole stack with a fresh root screen.
func (w *Workspace) switchRoot(target ViewTarget) tea.Cmd {
	if current := w.router.Current(); current != nil {
		current.Update(BlurMsg{})
	}
	scope := w.session.Scope()
	view := w.viewFactory(target, w.session, scope)
	view.SetSize(w.width, w.viewHeight())
	w.router.ReplaceRoot(view, scope)
	w.syncChrome()
	return tea.Batch(
		view.Init(),
		func() tea.Msg { return FocusMsg{} },
		tea.SetWindowTitle("agencydesk · "+view.Title()),
	)
}

// navigate pushes a detail view on top of the stack.
func (w *Workspace) navigate(target ViewTarget, scope Scope) tea.Cmd {
	if current := w.router.Current(); current != nil {
		current.Update(BlurMsg{})
	}
	view := w.viewFactory(target, w.session, scope)
	view.SetSize(w.width, w.viewHeight())
	w.router.Push(view, scope)
	w.syncChrome()
	return tea.Batch(
		view.Init(),
		func() tea.Msg { return FocusMsg{} },
		tea.SetWindowTitle("agencydesk · "+view.Title()),
	)
}

func (w *Workspace) goBack() tea.Cmd {
	if !w.router.CanGoBack() {
		return nil
	}
	if current := w.router.Current(); current != nil {
		current.Update(BlurMsg{})
	}
	w.router.Pop()
	view := w.router.Current()
	if view == nil {
		return nil
	}
	view.SetSize(w.width, w.viewHeight())
	view.Update(FocusMsg{})
	w.syncChrome()
	return tea.SetWindowTitle("agencydesk · " + view.Title())
}

func (w *Workspace) toggleHelp() {
	w.showHelp = !w.showHelp
	if w.showHelp {
		w.help.SetSize(w.width, w.viewHeight())
	}
}

func (w *Workspace) replaceCurrentView(updated tea.Model) {
	if v, ok := updated.(View); ok {
		if len(w.router.stack) > 0 {
			w.router.stack[len(w.router.stack)-1].view = v
		}
		// Key hints may change with view mode (form open, rows marked).
		w.statusBar.SetKeyHints(v.ShortHelp())
	}
}

func (w *Workspace) syncChrome() {
	w.help.SetGlobalKeys(w.keys.FullHelp())
	if view := w.router.Current(); view != nil {
		w.statusBar.SetKeyHints(view.ShortHelp())
		w.help.SetViewKeys(view.Title(), view.FullHelp())
	}
	w.syncPager()
}

// Pager is an optional interface for views with remote pagination; the
// status bar shows its label next to the account.
type Pager interface {
	PagerStatus() string
}

func (w *Workspace) syncPager() {
	if view, ok := w.router.Current().(Pager); ok {
		w.statusBar.SetPager(view.PagerStatus())
	} else {
		w.statusBar.SetPager("")
	}
}

func (w *Workspace) relayout() {
	w.statusBar.SetWidth(w.width)
	w.help.SetSize(w.width, w.viewHeight())
	if view := w.router.Current(); view != nil {
		view.SetSize(w.width, w.viewHeight())
	}
}

func (w *Workspace) viewHeight() int {
	h := w.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (w *Workspace) View() string {
	if w.quitting {
		return ""
	}

	theme := w.styles.Theme()
	w.syncPager()

	crumbs := strings.Join(w.router.Breadcrumbs(), " › ")
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		Width(w.width).
		Render(crumbs)

	divider := lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", max(w.width, 1)))

	main := ""
	if w.showHelp {
		main = w.help.View()
	} else if view := w.router.Current(); view != nil {
		main = view.View()
	}
	main = lipgloss.NewStyle().Height(w.viewHeight()).Render(main)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		divider,
		main,
		w.statusBar.View(),
	)
}
