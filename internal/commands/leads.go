package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/output"
)

// NewLeadsCmd creates the leads command group.
func NewLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "Manage sales leads",
	}

	cmd.AddCommand(
		newLeadsListCmd(),
		newLeadsShowCmd(),
		newLeadsUpdateCmd(),
		newLeadsDeleteCmd(),
	)
	return cmd
}

func newLeadsListCmd() *cobra.Command {
	var flags listFlags
	var source string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Long:  "List leads with server-side filtering and pagination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(app, "leads")
			if err != nil {
				return err
			}
			if source != "" {
				opts.Filters.Set("source", source)
			}

			page, err := app.API.Leads().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return present(app, asMaps(page.Results), "lead", false,
				output.WithSummary("%d of %d leads", len(page.Results), page.Meta.Count),
				output.WithMeta("page", page.Meta.CurrentPage),
				output.WithMeta("num_pages", page.Meta.NumPages))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Filter by lead source")
	return cmd
}

func newLeadsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			lead, err := app.API.Leads().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(lead), "lead", false)
		},
	}
}

func newLeadsUpdateCmd() *cobra.Command {
	var status string
	var score int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a lead's status or score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if status == "" && !cmd.Flags().Changed("score") {
				return output.ErrUsage("Nothing to update; pass --status or --score")
			}

			lead, err := app.API.Leads().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if status != "" {
				lead.Status = status
			}
			if cmd.Flags().Changed("score") {
				lead.Score = score
			}

			if err := app.API.Leads().Update(cmd.Context(), id, lead); err != nil {
				return err
			}
			return app.OK(asMap(lead), output.WithSummary("Lead %d updated", id))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().IntVar(&score, "score", 0, "New score")
	return cmd
}

func newLeadsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a lead",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := confirmDelete(app, fmt.Sprintf("Delete lead %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			if err := app.API.Leads().Delete(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Lead %d deleted", id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
