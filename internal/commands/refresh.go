package commands

import (
	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/completion"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/tui"
)

// NewRefreshCmd creates the refresh command. It repopulates the shell
// completion cache from the employee directory and client roster.
func NewRefreshCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the shell completion cache",
		Long:  "Fetch the employee directory and client roster into the local completion cache so tab completion works offline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			store := completion.NewStore(app.Config.CacheDir)
			if clear {
				if err := store.Clear(); err != nil {
					return err
				}
				return app.OK(nil, output.WithSummary("Completion cache cleared"))
			}

			if err := app.API.RequireAccount(); err != nil {
				return err
			}

			refresher := completion.NewRefresher(store, app.API)
			var result completion.RefreshResult
			if app.IsInteractive() {
				err = tui.Spin("Refreshing completion cache", func() error {
					result = refresher.RefreshAll(cmd.Context())
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				result = refresher.RefreshAll(cmd.Context())
			}
			if result.HasError() {
				return result.Error()
			}
			return app.OK(map[string]any{
				"employees": result.EmployeesCount,
				"clients":   result.ClientsCount,
			}, output.WithSummary("Cached %d %s and %d %s",
				result.EmployeesCount, pluralize(result.EmployeesCount, "employee", "employees"),
				result.ClientsCount, pluralize(result.ClientsCount, "client", "clients")))
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the cache instead of refreshing it")
	return cmd
}
