package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewPlansCmd creates the marketing plans command group.
func NewPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Manage marketing plans",
	}

	cmd.AddCommand(
		newPlansListCmd(),
		newPlansShowCmd(),
		newPlansCreateCmd(),
		newPlansUpdateCmd(),
		newPlansPublishCmd(),
		newPlansDeleteCmd(),
	)
	return cmd
}

func newPlansListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketing plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(app, "plans")
			if err != nil {
				return err
			}

			page, err := app.API.Plans().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return present(app, asMaps(page.Results), "marketing_plan", false,
				output.WithSummary("%d of %d marketing plans", len(page.Results), page.Meta.Count),
				output.WithMeta("page", page.Meta.CurrentPage),
				output.WithMeta("num_pages", page.Meta.NumPages))
		},
	}
	flags.register(cmd)
	return cmd
}

func newPlansShowCmd() *cobra.Command {
	var md bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a marketing plan",
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

			plan, err := app.API.Plans().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(plan), "marketing_plan", md)
		},
	}
	cmd.Flags().BoolVar(&md, "md", false, "Render as Markdown")
	return cmd
}

func newPlansCreateCmd() *cobra.Command {
	var title, objective string
	var channels []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new marketing plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			err = app.API.Plans().Create(cmd.Context(), &api.CreateMarketingPlanRequest{
				Title:     title,
				Objective: objective,
				Channels:  channels,
			})
			if err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Marketing plan %q queued for generation", title))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&objective, "objective", "", "Campaign objective")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "Target channel (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPlansUpdateCmd() *cobra.Command {
	var title, objective, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a marketing plan",
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
			if title == "" && objective == "" && status == "" {
				return output.ErrUsage("Nothing to update; pass --title, --objective or --status")
			}

			plan, err := app.API.Plans().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if title != "" {
				plan.Title = title
			}
			if objective != "" {
				plan.Objective = objective
			}
			if status != "" {
				plan.Status = status
			}

			if err := app.API.Plans().Update(cmd.Context(), id, plan); err != nil {
				return err
			}
			return app.OK(asMap(plan), output.WithSummary("Marketing plan %d updated", id))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&objective, "objective", "", "New objective")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newPlansPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a completed marketing plan",
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

			if err := app.API.Plans().Publish(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Marketing plan %d published", id))
		},
	}
}

func newPlansDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a marketing plan",
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
				ok, err := confirmDelete(app, fmt.Sprintf("Delete marketing plan %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			if err := app.API.Plans().Delete(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Marketing plan %d deleted", id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
