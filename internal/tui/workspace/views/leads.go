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

const leadsPerPage = 25

type leadKeyMap struct {
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func defaultLeadKeyMap() leadKeyMap {
	return leadKeyMap{
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new lead")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

// Leads is the sales pipeline screen: a remote-paged lead list with
// create, edit, and delete actions.
type Leads struct {
	session *workspace.Session
	styles  *tui.Styles

	pool  *data.MutatingPool[api.Page[models.Lead]]
	ctrl  *list.Controller[models.Lead, int64]
	coord *action.Coordinator[models.Lead, int64]

	list    *widget.List
	spinner spinner.Model
	loading bool
	keys    leadKeyMap
	lkeys   workspace.ListKeyMap

	form       *huh.Form
	formName   string
	formEmail  string
	formPhone  string
	formStatus string
	formScore  string

	pendingAction string

	width, height int
}

// NewLeads creates the leads screen.
func NewLeads(session *workspace.Session) *Leads {
	styles := session.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	lst := widget.NewList(styles)
	lst.SetEmptyMessage(empty.NoLeads())
	lst.SetFocused(true)

	ctrl := list.NewServer(func(l models.Lead) int64 { return l.ID }, leadsPerPage)

	v := &Leads{
		session: session,
		styles:  styles,
		ctrl:    ctrl,
		coord:   action.NewCoordinator[models.Lead, int64]("leads"),
		list:    lst,
		spinner: sp,
		loading: true,
		keys:    defaultLeadKeyMap(),
		lkeys:   workspace.DefaultListKeyMap(),
	}
	v.pool = session.Hub().LeadPages(ctrl.Options())
	return v
}

// Title implements workspace.View.
func (v *Leads) Title() string { return "Leads" }

// ShortHelp implements workspace.View.
func (v *Leads) ShortHelp() []key.Binding {
	if v.coord.Phase() == action.PhaseOpen {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("j/k"), key.WithHelp("j/k", "navigate")),
		v.keys.New,
		v.keys.Edit,
		v.keys.Delete,
	}
}

// FullHelp implements workspace.View.
func (v *Leads) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{v.lkeys.Up, v.lkeys.Down, v.lkeys.Top, v.lkeys.Bottom},
		{v.lkeys.NextPage, v.lkeys.PrevPage},
		{v.keys.New, v.keys.Edit, v.keys.Delete},
	}
}

// SetSize implements workspace.View.
func (v *Leads) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.list.SetSize(w, h)
}

// StartFilter implements workspace.Filterable.
func (v *Leads) StartFilter() { v.list.StartFilter() }

// InputActive implements workspace.InputCapturer.
func (v *Leads) InputActive() bool {
	return v.list.Filtering() || v.coord.Phase() == action.PhaseOpen
}

// IsModal implements workspace.ModalActive.
func (v *Leads) IsModal() bool { return v.coord.Phase() != action.PhaseClosed }

// PagerStatus implements workspace.Pager.
func (v *Leads) PagerStatus() string {
	if !v.ctrl.Loaded() {
		return ""
	}
	return fmt.Sprintf("page %d/%d · %d leads", v.ctrl.Page(), v.ctrl.TotalPages(), v.ctrl.Count())
}

// Init implements tea.Model.
func (v *Leads) Init() tea.Cmd {
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

func (v *Leads) adoptSnapshot() bool {
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
func (v *Leads) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return v, workspace.ReportError(msg.Err, "updating lead")
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
			return v, workspace.ReportError(msg.Err, "loading lead")
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
				workspace.ReportError(msg.Err, "saving lead"),
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

func (v *Leads) handleKey(msg tea.KeyMsg) tea.Cmd {
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

	case key.Matches(msg, v.keys.New):
		v.coord.OpenCreate(models.Lead{Status: "new"})
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

func (v *Leads) selectedID() (int64, bool) {
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

func (v *Leads) changePage() tea.Cmd {
	v.pool = v.session.Hub().LeadPages(v.ctrl.Options())
	if v.adoptSnapshot() {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

func (v *Leads) openEdit() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	client := v.session.Client()
	return tea.Batch(
		v.spinner.Tick,
		v.coord.OpenEdit(v.session.Context(), id, func(ctx context.Context) (models.Lead, error) {
			return client.Leads().Get(ctx, id)
		}),
	)
}

func (v *Leads) applyDelete() tea.Cmd {
	id, ok := v.coord.ConfirmDelete()
	if !ok {
		return nil
	}
	v.pendingAction = "Deleted"
	cmd := v.pool.Apply(v.session.Context(), data.LeadDeleteMutation{
		LeadID: id,
		Client: v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

func (v *Leads) openForm() tea.Cmd {
	rec := v.coord.Record()
	v.formName = rec.Name
	v.formEmail = rec.Email
	v.formPhone = rec.Phone
	v.formStatus = rec.Status
	if v.formStatus == "" {
		v.formStatus = "new"
	}
	v.formScore = strconv.Itoa(rec.Score)

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
				Title("Name").
				Value(&v.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&v.formEmail),
			huh.NewInput().
				Title("Phone").
				Value(&v.formPhone),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("New", "new"),
					huh.NewOption("Contacted", "contacted"),
					huh.NewOption("Qualified", "qualified"),
					huh.NewOption("Lost", "lost"),
				).
				Value(&v.formStatus),
			huh.NewInput().
				Title("Score").
				Description("0 to 100").
				Value(&v.formScore).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 || n > 100 {
						return fmt.Errorf("score must be between 0 and 100")
					}
					return nil
				}),
		),
	).WithWidth(width).WithShowHelp(false)

	return v.form.Init()
}

func (v *Leads) updateForm(msg tea.Msg) tea.Cmd {
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

func (v *Leads) submitForm() tea.Cmd {
	lead := v.coord.Record()
	lead.Name = strings.TrimSpace(v.formName)
	lead.Email = strings.TrimSpace(v.formEmail)
	lead.Phone = strings.TrimSpace(v.formPhone)
	lead.Status = v.formStatus
	if score, err := strconv.Atoi(v.formScore); err == nil {
		lead.Score = score
	}
	v.coord.SetRecord(lead)

	isEdit := v.coord.IsEdit()
	id := v.coord.TargetID()
	client := v.session.Client()

	return tea.Batch(
		v.spinner.Tick,
		v.coord.Submit(v.session.Context(), func(ctx context.Context, l models.Lead) error {
			if isEdit {
				return client.Leads().Update(ctx, id, l)
			}
			return client.Leads().Create(ctx, l)
		}),
	)
}

func (v *Leads) syncFromPool() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetRemotePage(snap.Data.Results, snap.Data.Meta)
		v.syncList()
		v.loading = false
	}
	if snap.State == data.StateError {
		v.loading = false
		return workspace.ReportError(snap.Err, "loading leads")
	}
	if snap.Loading() && !snap.HasData {
		v.loading = true
	}
	return nil
}

func (v *Leads) syncList() {
	rows := v.ctrl.Rows()
	items := make([]widget.ListItem, 0, len(rows))
	for _, l := range rows {
		name := l.Name
		if name == "" {
			name = "(unnamed)"
		}
		desc := l.Email
		if l.Source != "" {
			if desc != "" {
				desc += " · "
			}
			desc += l.Source
		}
		extra := format.StatusName(l.Status)
		if l.Score > 0 {
			extra = format.Score(l.Score) + " · " + extra
		}
		items = append(items, widget.ListItem{
			ID:          strconv.FormatInt(l.ID, 10),
			Title:       format.StatusIcon(l.Status) + " " + name,
			Description: desc,
			Extra:       extra,
		})
	}
	v.list.SetItems(items)
}

// View implements tea.Model.
func (v *Leads) View() string {
	switch v.coord.Phase() {
	case action.PhaseLoading:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Loading lead...")
	case action.PhaseSubmitting:
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Saving...")
	case action.PhaseOpen:
		if v.form != nil {
			return renderModal(v.styles, v.width, v.height, v.form.View())
		}
	case action.PhaseConfirmDelete:
		return renderConfirm(v.styles, v.width, v.height, "lead")
	}

	if v.loading {
		return lipgloss.NewStyle().
			Width(v.width).
			Height(v.height).
			Padding(1, 2).
			Render(v.spinner.View() + " Loading leads...")
	}
	return v.list.View()
}
