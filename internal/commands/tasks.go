package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/dateparse"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewTasksCmd creates the tasks command group.
func NewTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage employee tasks",
	}

	cmd.AddCommand(
		newTasksListCmd(),
		newTasksShowCmd(),
		newTasksCreateCmd(),
		newTasksUpdateCmd(),
		newTasksCompleteCmd(),
		newTasksDeleteCmd(),
	)
	return cmd
}

func newTasksListCmd() *cobra.Command {
	var flags listFlags
	var assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List tasks with server-side filtering and pagination. --assignee takes an employee ID, name or email.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			opts, err := flags.options(app, "tasks")
			if err != nil {
				return err
			}

			if assignee != "" {
				id, _, err := app.Names.ResolveEmployee(cmd.Context(), assignee)
				if err != nil {
					return err
				}
				opts.Filters.Set("assignee_id", strconv.FormatInt(id, 10))
			}

			page, err := app.API.Tasks().List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return present(app, asMaps(page.Results), "task", false,
				output.WithSummary("%d of %d tasks", len(page.Results), page.Meta.Count),
				output.WithMeta("page", page.Meta.CurrentPage),
				output.WithMeta("num_pages", page.Meta.NumPages))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee (ID, name or email)")
	_ = cmd.RegisterFlagCompletionFunc("assignee", completer.EmployeeCompletion())
	return cmd
}

func newTasksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
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

			task, err := app.API.Tasks().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(task), "task", false)
		},
	}
}

func newTasksCreateCmd() *cobra.Command {
	var title, details, assignee, due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long:  `Create a task. --due accepts natural dates: "tomorrow", "next friday", "+3", "2026-09-15".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			task := models.Task{
				Title:   title,
				Details: details,
				Status:  "not_started",
			}
			if assignee != "" {
				id, _, err := app.Names.ResolveEmployee(cmd.Context(), assignee)
				if err != nil {
					return err
				}
				task.AssigneeID = id
			}
			if due != "" {
				parsed := dateparse.Parse(due)
				if !dateparse.IsValid(parsed) {
					return output.ErrValidation("due", fmt.Sprintf("Unrecognized date: %q", due))
				}
				task.DueOn = parsed
			}

			if err := app.API.Tasks().Create(cmd.Context(), task); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Task %q created", title))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&details, "details", "", "Task details")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee (ID, name or email)")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.RegisterFlagCompletionFunc("assignee", completer.EmployeeCompletion())
	return cmd
}

func newTasksUpdateCmd() *cobra.Command {
	var title, details, assignee, due, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task",
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
			if title == "" && details == "" && assignee == "" && due == "" && status == "" {
				return output.ErrUsage("Nothing to update")
			}

			task, err := app.API.Tasks().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if title != "" {
				task.Title = title
			}
			if details != "" {
				task.Details = details
			}
			if assignee != "" {
				assigneeID, _, err := app.Names.ResolveEmployee(cmd.Context(), assignee)
				if err != nil {
					return err
				}
				task.AssigneeID = assigneeID
			}
			if due != "" {
				parsed := dateparse.Parse(due)
				if !dateparse.IsValid(parsed) {
					return output.ErrValidation("due", fmt.Sprintf("Unrecognized date: %q", due))
				}
				task.DueOn = parsed
			}
			if status != "" {
				task.Status = status
			}

			if err := app.API.Tasks().Update(cmd.Context(), id, task); err != nil {
				return err
			}
			return app.OK(asMap(task), output.WithSummary("Task %d updated", id))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&details, "details", "", "New details")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee (ID, name or email)")
	cmd.Flags().StringVar(&due, "due", "", "New due date")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newTasksCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>...",
		Aliases: []string{"done"},
		Short:   "Mark tasks completed",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			var completed int
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				if err := app.API.Tasks().UpdateStatus(cmd.Context(), id, "completed"); err != nil {
					return err
				}
				completed++
			}
			return app.OK(nil, output.WithSummary("%d %s completed",
				completed, pluralize(completed, "task", "tasks")))
		},
	}
}

func newTasksDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
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
				ok, err := confirmDelete(app, fmt.Sprintf("Delete task %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			if err := app.API.Tasks().Delete(cmd.Context(), id); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Task %d deleted", id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
