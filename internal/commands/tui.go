package commands

import (
	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/tui/workspace"
	"github.com/agencydesk/agencydesk/internal/tui/workspace/views"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	var screen string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive workspace",
		Long: `Open the full-screen workspace with the blogs, tasks, leads and
calendar screens. Requires a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if !app.IsInteractive() {
				return output.ErrUsage("The workspace needs an interactive terminal")
			}
			if err := app.API.RequireAccount(); err != nil {
				return err
			}
			return workspace.Run(cmd.Context(), app.API, screen, viewFactory)
		},
	}
	cmd.Flags().StringVar(&screen, "screen", "", "Start on a specific screen (blogs, tasks, leads, calendar)")
	return cmd
}

// viewFactory builds views for navigation targets.
func viewFactory(target workspace.ViewTarget, session *workspace.Session, scope workspace.Scope) workspace.View {
	switch target {
	case workspace.ViewTasks:
		return views.NewTasks(session)
	case workspace.ViewLeads:
		return views.NewLeads(session)
	case workspace.ViewCalendar:
		return views.NewCalendar(session)
	case workspace.ViewBlogDetail:
		return views.NewBlogDetail(session, scope.RecordID)
	default:
		return views.NewBlogs(session)
	}
}
