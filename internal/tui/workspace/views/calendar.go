package views

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/action"
	"github.com/agencydesk/agencydesk/internal/calendar"
	"github.com/agencydesk/agencydesk/internal/data"
	"github.com/agencydesk/agencydesk/internal/list"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui"
	"github.com/agencydesk/agencydesk/internal/tui/empty"
	"github.com/agencydesk/agencydesk/internal/tui/format"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
	"github.com/agencydesk/agencydesk/internal/tui/workspace/widget"
)

const calendarPerPage = 50

type calendarKeyMap struct {
	New       key.Binding
	Edit      key.Binding
	Duplicate key.Binding
	Delete    key.Binding
}

func defaultCalendarKeyMap() calendarKeyMap {
	return calendarKeyMap{
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Duplicate: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "duplicate")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	}
}

// Calendar is the social calendar screen. The backend stores the whole
// calendar as one array-valued document, so every edit rewrites the
// full document through an optimistic write mutation.
type Calendar struct {
	session *workspace.Session
	styles  *tui.Styles

	pool  *data.MutatingPool[[]models.CalendarEntry]
	ctrl  *list.Controller[models.CalendarEntry, string]
	coord *action.Coordinator[models.CalendarEntry, string]

	list    *widget.List
	spinner spinner.Model
	loading bool
	keys    calendarKeyMap
	lkeys   workspace.ListKeyMap

	form          *huh.Form
	formPlatform  string
	formCaption   string
	formScheduled string
	formStatus    string
	editID        string // EntryID under edit, "" for create

	pendingAction string

	width, height int
}

// NewCalendar creates the calendar screen.
func NewCalendar(session *workspace.Session) *Calendar {
	styles := session.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	lst := widget.NewList(styles)
	lst.SetEmptyMessage(empty.NoCalendarEntries())
	lst.SetFocused(true)

	ctrl := list.NewClient(
		func(e models.CalendarEntry) string { return e.EntryID },
		matchCalendarEntry,
		calendarPerPage,
	)

	return &Calendar{
		session: session,
		styles:  styles,
		pool:    session.Hub().Calendar(),
		ctrl:    ctrl,
		coord:   action.NewCoordinator[models.CalendarEntry, string]("calendar"),
		list:    lst,
		spinner: sp,
		loading: true,
		keys:    defaultCalendarKeyMap(),
		lkeys:   workspace.DefaultListKeyMap(),
	}
}

// Title implements workspace.View.
func (v *Calendar) Title() string { return "Social calendar" }

// ShortHelp implements workspace.View.
func (v *Calendar) ShortHelp() []key.Binding {
	if v.coord.Phase() == action.PhaseOpen {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("j/k"), key.WithHelp("j/k", "navigate")),
		v.keys.New,
		v.keys.Duplicate,
		v.keys.Delete,
	}
}

// FullHelp implements workspace.View.
func (v *Calendar) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{v.lkeys.Up, v.lkeys.Down, v.lkeys.Top, v.lkeys.Bottom},
		{v.lkeys.NextPage, v.lkeys.PrevPage},
		{v.keys.New, v.keys.Edit, v.keys.Duplicate, v.keys.Delete},
	}
}

// SetSize implements workspace.View.
func (v *Calendar) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.list.SetSize(w, h)
}

// StartFilter implements workspace.Filterable.
func (v *Calendar) StartFilter() { v.list.StartFilter() }

// InputActive implements workspace.InputCapturer.
func (v *Calendar) InputActive() bool {
	return v.list.Filtering() || v.coord.Phase() == action.PhaseOpen
}

// IsModal implements workspace.ModalActive.
func (v *Calendar) IsModal() bool { return v.coord.Phase() != action.PhaseClosed }

// PagerStatus implements workspace.Pager.
func (v *Calendar) PagerStatus() string {
	if !v.ctrl.Loaded() {
		return ""
	}
	return fmt.Sprintf("page %d/%d · %d entries", v.ctrl.Page(), v.ctrl.TotalPages(), v.ctrl.Count())
}

// Init implements tea.Model.
func (v *Calendar) Init() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetAll(snap.Data)
		v.syncList()
		v.loading = false
		if snap.Fresh() {
			return nil
		}
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

// Update implements tea.Model.
func (v *Calendar) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return v, workspace.ReportError(msg.Err, "writing calendar")
		}
		return v, nil

	case workspace.RefreshMsg:
		v.pool.Invalidate()
		v.loading = true
		return v, tea.Batch(v.spinner.Tick, v.pool.Fetch(v.session.Context()))

	case workspace.FocusMsg:
		return v, v.pool.FetchIfStale(v.session.Context())

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	if v.coord.Phase() == action.PhaseOpen && v.form != nil {
		return v, v.updateForm(msg)
	}
	return v, nil
}

func (v *Calendar) handleKey(msg tea.KeyMsg) tea.Cmd {
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
			return v.applyRemove()
		default:
			v.coord.Close()
			return nil
		}
	}

	if v.loading {
		return nil
	}

	switch {
	case key.Matches(msg, v.lkeys.NextPage):
		if v.ctrl.NextPage() {
			v.syncList()
		}
		return nil

	case key.Matches(msg, v.lkeys.PrevPage):
		if v.ctrl.PrevPage() {
			v.syncList()
		}
		return nil

	case key.Matches(msg, v.keys.New):
		v.coord.OpenCreate(models.CalendarEntry{Status: "scheduled"})
		return v.openForm()

	case key.Matches(msg, v.keys.Edit):
		return v.openEditLocal()

	case key.Matches(msg, v.keys.Duplicate):
		return v.duplicateSelected()

	case key.Matches(msg, v.keys.Delete):
		if id, ok := v.selectedID(); ok {
			v.coord.RequestDelete(id)
		}
		return nil
	}

	return v.list.Update(msg)
}

func (v *Calendar) selectedID() (string, bool) {
	item := v.list.Selected()
	if item == nil || item.ID == "" {
		return "", false
	}
	return item.ID, true
}

func (v *Calendar) entries() []models.CalendarEntry {
	return v.pool.Get().Data
}

// openEditLocal opens the edit form straight from the cached document;
// the whole calendar is already in memory, so there is no load step.
func (v *Calendar) openEditLocal() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	entries := v.entries()
	i := calendar.IndexOf(entries, id)
	if i < 0 {
		return nil
	}
	v.coord.OpenCreate(entries[i])
	return v.openFormFor(id)
}

func (v *Calendar) duplicateSelected() tea.Cmd {
	id, ok := v.selectedID()
	if !ok {
		return nil
	}
	updated, _, ok := calendar.Duplicate(v.entries(), id)
	if !ok {
		return nil
	}
	return v.applyWrite(updated, "Duplicated")
}

func (v *Calendar) applyRemove() tea.Cmd {
	id, ok := v.coord.ConfirmDelete()
	if !ok {
		return nil
	}
	updated, ok := calendar.Remove(v.entries(), id)
	if !ok {
		return v.staleEntry(id)
	}
	return v.applyWrite(updated, "Removed")
}

// staleEntry handles a keyed edit whose target id is no longer in the
// document (the row changed or vanished remotely). The document is not
// written back; the user re-picks the row from refreshed data.
func (v *Calendar) staleEntry(id string) tea.Cmd {
	v.form = nil
	v.editID = ""
	return tea.Batch(
		workspace.ReportError(
			fmt.Errorf("entry %s changed on the calendar; refreshed, please retry", id),
			"writing calendar",
		),
		v.pool.Fetch(v.session.Context()),
	)
}

// applyWrite sends the post-edit document through the optimistic write
// mutation and re-syncs the list from the updated snapshot.
func (v *Calendar) applyWrite(entries []models.CalendarEntry, flash string) tea.Cmd {
	v.pendingAction = flash
	cmd := v.pool.Apply(v.session.Context(), data.CalendarWriteMutation{
		Entries: entries,
		Client:  v.session.Client(),
	})
	v.syncFromPool()
	return cmd
}

func (v *Calendar) openForm() tea.Cmd {
	return v.openFormFor("")
}

// openFormFor builds the entry form. A non-empty editID means the
// submit replaces that entry instead of appending a new one.
func (v *Calendar) openFormFor(editID string) tea.Cmd {
	rec := v.coord.Record()
	v.formPlatform = rec.Platform
	if v.formPlatform == "" {
		v.formPlatform = "instagram"
	}
	v.formCaption = rec.Caption
	v.formScheduled = rec.ScheduledAt
	v.formStatus = rec.Status
	if v.formStatus == "" {
		v.formStatus = "scheduled"
	}
	v.editID = editID

	width := v.width - 8
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Platform").
				Options(
					huh.NewOption("Instagram", "instagram"),
					huh.NewOption("Facebook", "facebook"),
					huh.NewOption("LinkedIn", "linkedin"),
					huh.NewOption("TikTok", "tiktok"),
					huh.NewOption("X", "x"),
				).
				Value(&v.formPlatform),
			huh.NewText().
				Title("Caption").
				Value(&v.formCaption).
				Lines(3),
			huh.NewInput().
				Title("Scheduled at").
				Description("YYYY-MM-DD HH:MM").
				Value(&v.formScheduled).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02 15:04", s); err != nil {
						return fmt.Errorf("use the YYYY-MM-DD HH:MM format")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Scheduled", "scheduled"),
					huh.NewOption("Posted", "posted"),
				).
				Value(&v.formStatus),
		),
	).WithWidth(width).WithShowHelp(false)

	return v.form.Init()
}

func (v *Calendar) updateForm(msg tea.Msg) tea.Cmd {
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

func (v *Calendar) submitForm() tea.Cmd {
	entry := v.coord.Record()
	entry.Platform = v.formPlatform
	entry.Caption = strings.TrimSpace(v.formCaption)
	entry.ScheduledAt = strings.TrimSpace(v.formScheduled)
	entry.Status = v.formStatus

	editID := v.editID
	v.editID = ""
	v.coord.Close()
	v.form = nil

	var updated []models.CalendarEntry
	if editID != "" {
		entry.EntryID = editID
		var ok bool
		updated, ok = calendar.Update(v.entries(), entry)
		if !ok {
			return v.staleEntry(editID)
		}
	} else {
		updated = calendar.Add(v.entries(), entry)
	}
	return v.applyWrite(updated, "Saved")
}

func (v *Calendar) syncFromPool() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.ctrl.SetAll(snap.Data)
		v.syncList()
		v.loading = false
	}
	if snap.State == data.StateError {
		v.loading = false
		return workspace.ReportError(snap.Err, "loading calendar")
	}
	if snap.Loading() && !snap.HasData {
		v.loading = true
	}
	return nil
}

func (v *Calendar) syncList() {
	rows := v.ctrl.Rows()
	items := make([]widget.ListItem, 0, len(rows))
	for _, e := range rows {
		caption := format.Truncate(e.Caption, 60)
		if caption == "" {
			caption = "(no caption)"
		}
		items = append(items, widget.ListItem{
			ID:          e.EntryID,
			Title:       format.StatusIcon(e.Status) + " " + format.StatusName(e.Platform),
			Description: caption,
			Extra:       e.ScheduledAt,
		})
	}
	v.list.SetItems(items)
}

// View implements tea.Model.
func (v *Calendar) View() string {
	switch v.coord.Phase() {
	case action.PhaseOpen:
		if v.form != nil {
			return renderModal(v.styles, v.width, v.height, v.form.View())
		}
	case action.PhaseConfirmDelete:
		return renderConfirm(v.styles, v.width, v.height, "calendar entry")
	}

	if v.loading {
		return lipgloss.NewStyle().
			Width(v.width).
			Height(v.height).
			Padding(1, 2).
			Render(v.spinner.View() + " Loading calendar...")
	}
	return v.list.View()
}

// matchCalendarEntry filters entries locally: free text searches platform
// and caption, and the platform/status filter keys constrain exactly.
func matchCalendarEntry(e models.CalendarEntry, search string, filters url.Values) bool {
	if p := filters.Get("platform"); p != "" && !strings.EqualFold(e.Platform, p) {
		return false
	}
	if s := filters.Get("status"); s != "" && !strings.EqualFold(e.Status, s) {
		return false
	}
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Platform), q) ||
		strings.Contains(strings.ToLower(e.Caption), q)
}
