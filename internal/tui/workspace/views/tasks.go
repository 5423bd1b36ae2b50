package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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

const tasksPerPage = 25

type taskKeyMap struct {
	New      key.Binding
	Edit     key.Binding
	Complete key.Binding
	Delete   key.Binding
}

func defaultTaskKeyMap() taskKeyMap {
	return taskKeyMap{
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

// Tasks is the task board screen: a remote-paged task list with
// complete, create, edit, and delete actions.
type Tasks struct {
	session *workspace.Session
	styles  *tui.Styles

	pool  *data.MutatingPool[api.Page[models.Task]]
	ctrl  *list.Controller[models.Task, int64]
	coord *action.Coordinator[models.Task, int64]

	list    *widget.List
	spinner spinner.Model
	loading bool
	keys    taskKeyMap
	lkeys   workspace.ListKeyMap

	form        *huh.Form
	formTitle   string
	formDetails string
	formDueOn   string
	formStatus  string

	pendingAction string

	width, height int
}

// NewTasks creates the tasks screen.
func NewTasks(session *workspace.Session) *Tasks {
	styles := session.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	lst := widget.NewList(styles)
	lst.SetEmptyMessage(empty.NoTasks(""))
	lst.SetFocused(true)

	ctrl := list.NewServer(func(t models.Task) int64 { return t.ID }, tasksPerPage)

	v := &Tasks{
		session: session,
		styles:  styles,
		ctrl:    ctrl,
		coord:   action.NewCoordinator[models.Task, int64]("tasks"),
		list:    lst,
		spinner: sp,
		loading: true,
		keys:    defaultTaskKeyMap(),
		lkeys:   workspace.DefaultListKeyMap(),
	}
	v.pool = session.Hub().TaskPages(ctrl.Options())
	return v
}

// Title implements workspace.View.
func (v *Tasks) Title() string { return "Tasks" }

// ShortHelp implements workspace.View.
func (v *Tasks) ShortHelp() []key.Binding {
	if v.coord.Phase() == action.PhaseOpen {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("j/k"), key.WithHelp("j/k", "navigate")),
		v.keys.Complete,
		v.keys.New,
		v.keys.Delete,
	}
}

// FullHelp implements workspace.View.
func (v *Tasks) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{v.lkeys.Up, v.lkeys.Down, v.lkeys.Top, v.lkeys.Bottom},
		{v.lkeys.NextPage, v.lkeys.PrevPage},
		{v.keys.New, v.keys.Edit, v.keys.Complete, v.keys.Delete},
	}
}

// SetSize implements workspace.View.
func (v *Tasks) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.list.SetSize(w, h)
}

// StartFilter implements workspace.Filterable.
func (v *Tasks) StartFilter() { v.list.StartFilter() }

// InputActive implements workspace.InputCapturer.
func (v *Tasks) InputActive() bool {
	return v.list.Filtering() || v.coord.Phase() == action.PhaseOpen
}

// IsModal implements workspace.ModalActive.
func (v *Tasks) IsModal() bool { return v.coord.Phase() != action.PhaseClosed }

// PagerStatus implements workspace.Pager.
func (v *Tasks) PagerStatus() string {
	if !v.ctrl.Loaded() {
		return ""
	}
	return fmt.Sprintf("page %d/%d · %d tasks", v.ctrl.Page(), v.ctrl.TotalPages(), v.ctrl.Count())
}

// Init implements tea.Model.
func (v *Tasks) Init() tea.Cmd {
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

func (v *Tasks) adoptSnapshot() bool {
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
func (v *Tasks) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			v.syncFromPool()
			return v, workspace.ReportError(msg.Err, "updating task")
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
			return v, workspace.ReportError(msg.Err, "loading task")
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
			// Rebuild the form so the completed huh state cannot re-fire
			// the save; the record keeps the submitted values.
			return v, tea.Batch(
				v.openForm(),
				workspace.ReportError(msg.Err, "saving task"),
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

	if res := v.coord.HandleDetail(msg); res != nil {
		return v, func() tea.Msg { return res }
	}
	if res := v.coord.HandleSubmit(msg); res != nil {
		return v, func() tea.Msg { return res }
	}
	if v.coord.Phase() == action.PhaseOpen && v.form != nil {
		return v, v.updateForm(msg)
	}
	return v, nil
}

func (v *Tasks) handleKey(msg tea.KeyMsg) tea.Cmd {
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

	case key.Matches(msg, v.keys.Complete):
		return v.completeSelected()

	case key.Matches(msg, v.keys.New):
		v.coord.OpenCreate(models.Task{Status: models.TaskNotStarted})
		return v.openForm()

	case key.Matches(msg, v.keys.Edit):
		return v.openEdit()

	case key.Matches(msg, v.keys.Delete):
		if id, ok := v.selectedID(); ok {
			v.coord.RequestDelete(id)
		}
		return nil
	}

	return v.list.Update(msg)
}

func (v *Tasks) selectedID() (int64, bool) {
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

func (v *Tasks) changePage() tea.Cmd {
	v.pool = v.session.Hub().TaskPages(v.ctrl.Options())
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

func (v *Tasks) completeSelected() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	v.pendingAction = "Completed"
	cmd := v.pool.Apply(v.session.Context(), data.TaskStatusMutation{
		TaskID: id,
		Status: models.TaskCompleted,
		Client: v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

func (v *Tasks) openEdit() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	client := v.session.Client()
	return tea.Batch(
		v.spinner.Tick,
		v.coord.OpenEdit(v.session.Context(), id, func(ctx context.Context) (models.Task, error) {
			return client.Tasks().Get(ctx, id)
		}),
	)
}

func (v *Tasks) applyDelete() tea.Cmd {
	id, ok := v.coord.ConfirmDelete()
	if !ok {
		return nil
	}
	v.pendingAction = "Deleted"
	cmd := v.pool.Apply(v.session.Context(), data.TaskDeleteMutation{
		TaskID: id,
		Client: v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

func (v *Tasks) openForm() tea.Cmd {
	rec := v.coord.Record()
	v.formTitle = rec.Title
	v.formDetails = rec.Details
	v.formDueOn = rec.DueOn
	v.formStatus = rec.Status
	if v.formStatus == "" {
		v.formStatus = models.TaskNotStarted
	}

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
			huh.NewText().
				Title("Details").
				Value(&v.formDetails).
				Lines(3),
			huh.NewInput().
				Title("Due on").
				Description("YYYY-MM-DD, optional").
				Value(&v.formDueOn).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use the YYYY-MM-DD format")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Not started", models.TaskNotStarted),
					huh.NewOption("In progress", models.TaskInProgress),
					huh.NewOption("Awaiting feedback", models.TaskAwaitingFeedback),
					huh.NewOption("Completed", models.TaskCompleted),
				).
				Value(&v.formStatus),
		),
	).WithWidth(width).WithShowHelp(false)

	return v.form.Init()
}

func (v *Tasks) updateForm(msg tea.Msg) tea.Cmd {
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

func (v *Tasks) submitForm() tea.Cmd {
	task := v.coord.Record()
	task.Title = strings.TrimSpace(v.formTitle)
	task.Details = strings.TrimSpace(v.formDetails)
	task.DueOn = strings.TrimSpace(v.formDueOn)
	task.Status = v.formStatus
	v.coord.SetRecord(task)

	isEdit := v.coord.IsEdit()
	id := v.coord.TargetID()
	client := v.session.Client()

	return tea.Batch(
		v.spinner.Tick,
		v.coord.Submit(v.session.Context(), func(ctx context.Context, t models.Task) error {
			if isEdit {
				return client.Tasks().Update(ctx, id, t)
			}
			return client.Tasks().Create(ctx, t)
		}),
	)
}

func (v *Tasks) syncFromPool() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetRemotePage(snap.Data.Results, snap.Data.Meta)
		v.syncList()
		v.loading = false
	}
	if snap.State == data.StateError {
		v.loading = false
		return workspace.ReportError(snap.Err, "loading tasks")
	}
	if snap.Loading() && !snap.HasData {
		v.loading = true
	}
	return nil
}

func (v *Tasks) syncList() {
	rows := v.ctrl.Rows()
	items := make([]widget.ListItem, 0, len(rows))
	for _, t := range rows {
		title := t.Title
		if title == "" {
			title = "(untitled)"
		}
		desc := t.Assignee
		if due := format.DueLabel(t.DueOn); due != "" {
			if desc != "" {
				desc += " · "
			}
			desc += due
		}
		items = append(items, widget.ListItem{
			ID:          strconv.FormatInt(t.ID, 10),
			Title:       format.StatusIcon(t.Status) + " " + title,
			Description: desc,
			Extra:       format.StatusName(t.Status),
		})
	}
	v.list.SetItems(items)
}

// View implements tea.Model.
func (v *Tasks) View() string {
	switch v.coord.Phase() {
	case action.PhaseLoading:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Loading task...")
	case action.PhaseSubmitting:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Saving...")
	case action.PhaseOpen:
		if v.form != nil {
			return renderModal(v.styles, v.width, v.height, v.form.View())
		}
	case action.PhaseConfirmDelete:
		return renderConfirm(v.styles, v.width, v.height, "task")
	}

	if v.loading {
		return lipgloss.NewStyle().
			Width(v.width).
			Height(v.height).
			Padding(1, 2).
			Render(v.spinner.View() + " Loading tasks...")
	}
	return v.list.View()
}
