package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agencydesk/agencydesk/internal/data"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/tui"
	"github.com/agencydesk/agencydesk/internal/tui/format"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
	"github.com/agencydesk/agencydesk/internal/tui/workspace/widget"
)

// BlogDetail shows one blog post with its full generated content
// rendered as styled Markdown.
type BlogDetail struct {
	session *workspace.Session
	styles  *tui.Styles
	postID  int64

	pool    *data.Pool[models.BlogPost]
	preview *widget.Preview
	spinner spinner.Model
	loading bool

	publishing bool

	width, height int
}

// publishResultMsg reports the outcome of publishing from the detail
// pane.
type publishResultMsg struct {
	postID int64
	err    error
}

// NewBlogDetail creates the detail view for one post.
func NewBlogDetail(session *workspace.Session, postID int64) *BlogDetail {
	styles := session.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme().Primary)

	return &BlogDetail{
		session: session,
		styles:  styles,
		postID:  postID,
		pool:    session.Hub().BlogDetail(postID),
		preview: widget.NewPreview(styles),
		spinner: sp,
		loading: true,
	}
}

// Title implements workspace.View.
func (v *BlogDetail) Title() string { return "Post" }

// ShortHelp implements workspace.View.
func (v *BlogDetail) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("j/k"), key.WithHelp("j/k", "scroll")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// FullHelp implements workspace.View.
func (v *BlogDetail) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "scroll down")),
			key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "scroll up")),
			key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
			key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		},
		{
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		},
	}
}

// SetSize implements workspace.View.
func (v *BlogDetail) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.preview.SetSize(w, h)
}

// Init implements tea.Model.
func (v *BlogDetail) Init() tea.Cmd {
	snap := v.pool.Get()
	if snap.Usable() {
		v.syncPreview(snap.Data)
		v.loading = false
		if snap.Fresh() {
			return nil
		}
	}
	return tea.Batch(v.spinner.Tick, v.pool.FetchIfStale(v.session.Context()))
}

// Update implements tea.Model.
func (v *BlogDetail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case data.PoolUpdatedMsg:
		if msg.Key == v.pool.Key() {
			snap := v.pool.Get()
			if snap.Usable() {
				v.syncPreview(snap.Data)
				v.loading = false
			}
			if snap.State == data.StateError {
				v.loading = false
				return v, workspace.ReportError(snap.Err, "loading post")
			}
		}
		return v, nil

	case workspace.RefreshMsg:
		v.pool.Invalidate()
		v.loading = true
		return v, tea.Batch(v.spinner.Tick, v.pool.Fetch(v.session.Context()))

	case publishResultMsg:
		v.publishing = false
		if msg.err != nil {
			return v, workspace.ReportError(msg.err, "publishing post")
		}
		v.session.Hub().InvalidateResource(data.ResourceBlogs)
		v.pool.Invalidate()
		return v, tea.Batch(
			workspace.SetStatus("Published", false),
			v.pool.Fetch(v.session.Context()),
		)

	case spinner.TickMsg:
		if v.loading || v.publishing {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *BlogDetail) handleKey(msg tea.KeyMsg) tea.Cmd {
	half := v.height / 2
	if half < 1 {
		half = 1
	}

	switch msg.String() {
	case "j", "down":
		v.preview.ScrollDown(1)
	case "k", "up":
		v.preview.ScrollUp(1)
	case "ctrl+d":
		v.preview.ScrollDown(half)
	case "ctrl+u":
		v.preview.ScrollUp(half)
	case "p":
		return v.publish()
	}
	return nil
}

func (v *BlogDetail) publish() tea.Cmd {
	if v.publishing {
		return nil
	}
	snap := v.pool.Get()
	if snap.HasData && snap.Data.Status == models.BlogPublished {
		return workspace.SetStatus("Already published", false)
	}
	v.publishing = true
	client := v.session.Client()
	ctx := v.session.Context()
	id := v.postID
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		return publishResultMsg{postID: id, err: client.Blogs().Publish(ctx, id)}
	})
}

func (v *BlogDetail) syncPreview(post models.BlogPost) {
	title := post.Title
	if title == "" {
		title = "(untitled)"
	}
	v.preview.SetTitle(title)

	fields := []widget.PreviewField{
		{Key: "Status", Value: format.StatusName(post.Status)},
	}
	if len(post.Keywords) > 0 {
		fields = append(fields, widget.PreviewField{Key: "Keywords", Value: strings.Join(post.Keywords, ", ")})
	}
	if post.CreatedAt != "" {
		fields = append(fields, widget.PreviewField{Key: "Created", Value: format.Timestamp(post.CreatedAt)})
	}
	if post.UpdatedAt != "" {
		fields = append(fields, widget.PreviewField{Key: "Updated", Value: format.Timestamp(post.UpdatedAt)})
	}
	v.preview.SetFields(fields)

	body := post.Content
	if body == "" {
		body = "_No content generated yet._"
	}
	v.preview.SetBody(body)
	v.preview.SetSize(v.width, v.height)
}

// View implements tea.Model.
func (v *BlogDetail) View() string {
	if v.loading {
		return lipgloss.NewStyle().
			Width(v.width).
			Height(v.height).
			Padding(1, 2).
			Render(v.spinner.View() + " Loading post...")
	}
	if v.publishing {
		return renderModal(v.styles, v.width, v.height, v.spinner.View()+" Publishing...")
	}
	return v.preview.View()
}
