package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/action"
	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/data"
	"github.com/agencydesk/agencydesk/internal/list"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui"
	"github.com/agencydesk/agencydesk/internal/tui/empty"
	"github.com/agencydesk/agencydesk/internal/tui/format"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
	"github.com/agencydesk/agencydesk/internal/tui/workspace/widget"
)

const blogsPerPage = 25

// blogKeyMap holds the screen-specific actions for the blogs list.
type blogKeyMap struct {
	New     key.Binding
	Edit    key.Binding
	Publish key.Binding
	Delete  key.Binding
}

func defaultBlogKeyMap() blogKeyMap {
	return blogKeyMap{
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new post")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Publish: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

// Blogs is the blog posts list screen: a remote-paged list with
// publish, edit, create, and delete actions applied optimistically.
type Blogs struct {
	session *workspace.Session
	styles  *tui.Styles

	pool  *data.MutatingPool[api.Page[models.BlogPost]]
	ctrl  *list.Controller[models.BlogPost, int64]
	coord *action.Coordinator[models.BlogPost, int64]

	list    *widget.List
	spinner spinner.Model
	loading bool
	keys    blogKeyMap
	lkeys   workspace.ListKeyMap

	form         *huh.Form
	formTitle    string
	formKeywords string

	pendingAction string // flash text for the in-flight mutation

	width, height int
}

// NewBlogs creates the blogs screen.
func NewBlogs(session *workspace.Session) *Blogs {
	styles := session.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	lst := widget.NewList(styles)
	lst.SetEmptyMessage(empty.NoBlogPosts(""))
	lst.SetFocused(true)

	ctrl := list.NewServer(func(p models.BlogPost) int64 { return p.ID }, blogsPerPage)

	v := &Blogs{
		session: session,
		styles:  styles,
		ctrl:    ctrl,
		coord:   action.NewCoordinator[models.BlogPost, int64]("blogs"),
		list:    lst,
		spinner: sp,
		loading: true,
		keys:    defaultBlogKeyMap(),
		lkeys:   workspace.DefaultListKeyMap(),
	}
	v.pool = session.Hub().BlogPages(ctrl.Options())
	return v
}

// Title implements workspace.View.
func (v *Blogs) Title() string { return "Blog posts" }

// ShortHelp implements workspace.View.
func (v *Blogs) ShortHelp() []key.Binding {
	if v.coord.Phase() == action.PhaseOpen {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("j/k"), key.WithHelp("j/k", "navigate")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		v.keys.New,
		v.keys.Publish,
	}
}

// FullHelp implements workspace.View.
func (v *Blogs) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{v.lkeys.Up, v.lkeys.Down, v.lkeys.Top, v.lkeys.Bottom, v.lkeys.Open},
		{v.lkeys.NextPage, v.lkeys.PrevPage, v.lkeys.Toggle, v.lkeys.SelectAll},
		{v.keys.New, v.keys.Edit, v.keys.Publish, v.keys.Delete},
	}
}

// SetSize implements workspace.View.
func (v *Blogs) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.list.SetSize(w, h)
}

// StartFilter implements workspace.Filterable.
func (v *Blogs) StartFilter() { v.list.StartFilter() }

// InputActive implements workspace.InputCapturer.
func (v *Blogs) InputActive() bool {
	return v.list.Filtering() || v.coord.Phase() == action.PhaseOpen
}

// IsModal implements workspace.ModalActive.
func (v *Blogs) IsModal() bool { return v.coord.Phase() != action.PhaseClosed }

// PagerStatus implements workspace.Pager.
func (v *Blogs) PagerStatus() string {
	if !v.ctrl.Loaded() {
		return ""
	}
	return fmt.Sprintf("page %d/%d · %d posts", v.ctrl.Page(), v.ctrl.TotalPages(), v.ctrl.Count())
}

// Init implements tea.Model.
func (v *Blogs) Init() tea.Cmd {
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

// adoptSnapshot syncs cached pool data into the controller and list.
// Reports whether the snapshot is fresh enough to skip fetching.
func (v *Blogs) adoptSnapshot() bool {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetRemotePage(snap.Data.Results, snap.Data.Meta)
		v.syncList()
		v.loading = false
		return snap.Fresh()
	}
	v.loading = true
	return false
}

// Update implements tea.Model.
func (v *Blogs) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case data.PoolUpdatedMsg:
		if msg.Key == v.pool.Key() {
			return v, v.syncFromPool()
		}
		return v, nil

	case data.MutationAppliedMsg:
		if msg.Key == v.pool.Key() && v.pendingAction != "" {
			text := v.pendingAction
			v.pendingAction = ""
			return v, workspace.SetStatus(text, false)
		}
		return v, nil

	case data.MutationErrorMsg:
		if msg.Key == v.pool.Key() {
			v.pendingAction = ""
			// The pool rolled the optimistic change back.
			v.syncFromPool()
			return v, workspace.ReportError(msg.Err, "saving blog post")
		}
		return v, nil

	case workspace.RefreshMsg:
		v.pool.Invalidate()
		v.loading = true
		return v, tea.Batch(v.spinner.Tick, v.pool.Fetch(v.session.Context()))

	case workspace.FocusMsg:
		return v, v.pool.FetchIfStale(v.session.Context())

	case action.DetailLoadedMsg:
		if msg.Key == v.coord.Key() {
			return v, v.openForm()
		}
		return v, nil

	case action.DetailErrorMsg:
		if msg.Key == v.coord.Key() {
			return v, workspace.ReportError(msg.Err, "loading blog post")
		}
		return v, nil

	case action.SubmitDoneMsg:
		if msg.Key == v.coord.Key() {
			v.form = nil
			v.pool.Invalidate()
			return v, tea.Batch(
				workspace.SetStatus("Saved", false),
				v.pool.Fetch(v.session.Context()),
			)
		}
		return v, nil

	case action.SubmitErrorMsg:
		if msg.Key == v.coord.Key() {
			// Rebuild the form: the old one is in the completed state and
			// would hand the save straight back to submitForm. The record
			// keeps the submitted values, so nothing the user typed is
			// lost, and saving again takes an explicit re-submit.
			return v, tea.Batch(
				v.openForm(),
				workspace.ReportError(msg.Err, "saving blog post"),
			)
		}
		return v, nil

	case spinner.TickMsg:
		if v.loading || v.coord.Phase() == action.PhaseLoading || v.coord.Phase() == action.PhaseSubmitting {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	// Coordinator async results arrive as unexported carrier types;
	// fold them and re-dispatch the public message.
	if res := v.coord.HandleDetail(msg); res != nil {
		return v, func() tea.Msg { return res }
	}
	if res := v.coord.HandleSubmit(msg); res != nil {
		return v, func() tea.Msg { return res }
	}

	// Forms consume non-key messages too (blink ticks).
	if v.coord.Phase() == action.PhaseOpen && v.form != nil {
		return v, v.updateForm(msg)
	}
	return v, nil
}

func (v *Blogs) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch v.coord.Phase() {
	case action.PhaseOpen:
		if msg.String() == "esc" {
			v.coord.Close()
			v.form = nil
			return nil
		}
		return v.updateForm(msg)

	case action.PhaseConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			return v.applyDelete()
		default:
			v.coord.Close()
			return nil
		}

	case action.PhaseLoading, action.PhaseSubmitting:
		if msg.String() == "esc" {
			v.coord.Close()
			v.form = nil
		}
		return nil
	}

	if v.loading {
		return nil
	}

	switch {
	case key.Matches(msg, v.lkeys.Open):
		return v.openSelected()

	case key.Matches(msg, v.lkeys.NextPage):
		if v.ctrl.NextPage() {
			return v.changePage()
		}
		return nil

	case key.Matches(msg, v.lkeys.PrevPage):
		if v.ctrl.PrevPage() {
			return v.changePage()
		}
		return nil

	case key.Matches(msg, v.lkeys.Toggle):
		if id, ok := v.selectedID(); ok {
			v.ctrl.ToggleSelect(id)
			v.syncList()
		}
		return nil

	case key.Matches(msg, v.lkeys.SelectAll):
		if v.ctrl.SelectedCount() == len(v.ctrl.Rows()) {
			v.ctrl.ClearSelection()
		} else {
			v.ctrl.SelectAll()
		}
		v.syncList()
		return nil

	case key.Matches(msg, v.keys.New):
		v.coord.OpenCreate(models.BlogPost{Status: models.BlogDraft})
		return v.openForm()

	case key.Matches(msg, v.keys.Edit):
		return v.openEdit()

	case key.Matches(msg, v.keys.Publish):
		return v.publishSelected()

	case key.Matches(msg, v.keys.Delete):
		if id, ok := v.selectedID(); ok {
			v.coord.RequestDelete(id)
		}
		return nil
	}

	return v.list.Update(msg)
}

func (v *Blogs) selectedID() (int64, bool) {
	item := v.list.Selected()
	if item == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (v *Blogs) openSelected() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	scope := v.session.Scope()
	scope.RecordID = id
	return workspace.Navigate(workspace.ViewBlogDetail, scope)
}

func (v *Blogs) changePage() tea.Cmd {
	v.pool = v.session.Hub().BlogPages(v.ctrl.Options())
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

func (v *Blogs) publishSelected() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	v.pendingAction = "Published"
	cmd := v.pool.Apply(v.session.Context(), data.BlogPublishMutation{
		PostID: id,
		Client: v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

func (v *Blogs) openEdit() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	client := v.session.Client()
	return tea.Batch(
		v.spinner.Tick,
		v.coord.OpenEdit(v.session.Context(), id, func(ctx context.Context) (models.BlogPost, error) {
			return client.Blogs().Get(ctx, id)
		}),
	)
}

func (v *Blogs) applyDelete() tea.Cmd {
	id, ok := v.coord.ConfirmDelete()
	if !ok {
		return nil
	}
	v.pendingAction = "Deleted"
	cmd := v.pool.Apply(v.session.Context(), data.BlogDeleteMutation{
		PostID: id,
		Client: v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

// openForm builds the create or edit form from the coordinator record.
func (v *Blogs) openForm() tea.Cmd {
	rec := v.coord.Record()
	v.formTitle = rec.Title
	v.formKeywords = strings.Join(rec.Keywords, ", ")

	width := v.width - 8
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Keywords").
				Description("Comma separated").
				Value(&v.formKeywords),
		),
	).WithWidth(width).WithShowHelp(false)

	return v.form.Init()
}

func (v *Blogs) updateForm(msg tea.Msg) tea.Cmd {
	if v.form == nil {
		return nil
	}
	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		v.coord.Close()
		v.form = nil
		return nil
	case huh.StateCompleted:
		return tea.Batch(cmd, v.submitForm())
	}
	return cmd
}

func (v *Blogs) submitForm() tea.Cmd {
	post := v.coord.Record()
	post.Title = strings.TrimSpace(v.formTitle)
	post.Keywords = splitKeywords(v.formKeywords)
	v.coord.SetRecord(post)

	isEdit := v.coord.IsEdit()
	id := v.coord.TargetID()
	client := v.session.Client()

	return tea.Batch(
		v.spinner.Tick,
		v.coord.Submit(v.session.Context(), func(ctx context.Context, p models.BlogPost) error {
			if isEdit {
				return client.Blogs().Update(ctx, id, p)
			}
			return client.Blogs().Create(ctx, &api.CreateBlogPostRequest{
				Title:    p.Title,
				Keywords: p.Keywords,
			})
		}),
	)
}

// splitKeywords parses a comma separated keyword string.
func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func (v *Blogs) syncFromPool() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetRemotePage(snap.Data.Results, snap.Data.Meta)
		v.syncList()
		v.loading = false
	}
	if snap.State == data.StateError {
		v.loading = false
		return workspace.ReportError(snap.Err, "loading blog posts")
	}
	if snap.Loading() && !snap.HasData {
		v.loading = true
	}
	return nil
}

func (v *Blogs) syncList() {
	rows := v.ctrl.Rows()
	items := make([]widget.ListItem, 0, len(rows))
	for _, p := range rows {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		items = append(items, widget.ListItem{
			ID:          strconv.FormatInt(p.ID, 10),
			Title:       format.StatusIcon(p.Status) + " " + title,
			Description: strings.Join(p.Keywords, ", "),
			Extra:       format.Timestamp(p.CreatedAt),
			Marked:      v.ctrl.IsSelected(p.ID),
		})
	}
	v.list.SetItems(items)
}

// View implements tea.Model.
func (v *Blogs) View() string {
	switch v.coord.Phase() {
	case action.PhaseLoading:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Loading post...")
	case action.PhaseSubmitting:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Saving...")
	case action.PhaseOpen:
		if v.form != nil {
			return renderModal(v.styles, v.width, v.height, v.form.View())
		}
	case action.PhaseConfirmDelete:
		return renderConfirm(v.styles, v.width, v.height, "blog post")
	}

	if v.loading {
		return lipgloss.NewStyle().
			Width(v.width).
			Height(v.height).
			Padding(1, 2).
			Render(v.spinner.View() + " Loading blog posts...")
	}
	return v.list.View()
}
