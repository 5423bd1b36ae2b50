package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/filters"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewFiltersCmd creates the saved-filters command group. Saved filters
// are applied to list commands with --saved <name>.
func NewFiltersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Manage saved list filters",
		Long: `Manage saved list filters.

A saved filter bundles filter keys and a search term under a name,
scoped to one resource:

  agencydesk filters save hot --resource leads --filter status=qualified --search agency
  agencydesk leads list --saved hot`,
	}

	cmd.AddCommand(
		newFiltersSaveCmd(),
		newFiltersListCmd(),
		newFiltersDeleteCmd(),
	)
	return cmd
}

func newFiltersSaveCmd() *cobra.Command {
	var resource, search string
	var filterPairs []string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			filter := make(map[string]string, len(filterPairs))
			for _, pair := range filterPairs {
				k, v, ok := strings.Cut(pair, "=")
				if !ok || k == "" {
					return output.ErrUsage(fmt.Sprintf("Invalid --filter %q, expected key=value", pair))
				}
				filter[k] = v
			}
			if len(filter) == 0 && search == "" {
				return output.ErrUsage("Pass at least one --filter or --search")
			}

			err = app.FilterStore().Put(filters.Saved{
				Name:     args[0],
				Resource: resource,
				Filter:   filter,
				Search:   search,
			})
			if err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Filter %q saved for %s", args[0], resource))
		},
	}
	cmd.Flags().StringVar(&resource, "resource", "", "Resource the filter applies to (blogs, leads, tasks, ...)")
	cmd.Flags().StringSliceVar(&filterPairs, "filter", nil, "Filter key=value (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	_ = cmd.MarkFlagRequired("resource")
	return cmd
}

func newFiltersListCmd() *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			saved := app.FilterStore().List(resource)
			return app.OK(saved, output.WithSummary("%d saved %s",
				len(saved), pluralize(len(saved), "filter", "filters")))
		},
	}
	cmd.Flags().StringVar(&resource, "resource", "", "Only filters for this resource")
	return cmd
}

func newFiltersDeleteCmd() *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved filter",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := app.FilterStore().Remove(resource, args[0]); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Filter %q deleted", args[0]))
		},
	}
	cmd.Flags().StringVar(&resource, "resource", "", "Resource the filter belongs to")
	_ = cmd.MarkFlagRequired("resource")
	return cmd
}
