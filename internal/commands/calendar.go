package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/calendar"
	"github.com/agencydesk/agencydesk/internal/dateparse"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewCalendarCmd creates the social calendar command group. Every edit
// is a read-transform-write cycle over the whole calendar document;
// entries are addressed by the entry id shown in list output, never by
// position.
func NewCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Manage the social-media content calendar",
	}

	cmd.AddCommand(
		newCalendarListCmd(),
		newCalendarAddCmd(),
		newCalendarUpdateCmd(),
		newCalendarDeleteCmd(),
		newCalendarDuplicateCmd(),
	)
	return cmd
}

// loadCalendar reads the document and keys it by entry id.
func loadCalendar(cmd *cobra.Command) ([]models.CalendarEntry, error) {
	app, err := appFrom(cmd)
	if err != nil {
		return nil, err
	}
	entries, err := app.API.Calendar().Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	return calendar.AssignIDs(entries), nil
}

func newCalendarListCmd() *cobra.Command {
	var platform, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			entries, err := loadCalendar(cmd)
			if err != nil {
				return err
			}

			filtered := make([]models.CalendarEntry, 0, len(entries))
			for _, e := range entries {
				if platform != "" && e.Platform != platform {
					continue
				}
				if status != "" && e.Status != status {
					continue
				}
				filtered = append(filtered, e)
			}

			return present(app, asMaps(filtered), "calendar_entry", false,
				output.WithSummary("%d %s", len(filtered), pluralize(len(filtered), "post", "posts")))
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", "Filter by platform")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	return cmd
}

func newCalendarAddCmd() *cobra.Command {
	var platform, caption, at string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a post",
		Long:  `Schedule a social post. --at accepts natural dates with an optional clock: "tomorrow 14:30", "next friday", "2026-09-15T09:00:00Z".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			entry := models.CalendarEntry{
				Platform: platform,
				Caption:  caption,
				Status:   "draft",
			}
			if at != "" {
				stamp, ok := dateparse.ParseStamp(at)
				if !ok {
					return output.ErrValidation("at", fmt.Sprintf("Unrecognized schedule time: %q", at))
				}
				entry.ScheduledAt = stamp
				entry.Status = "scheduled"
			}

			entries, err := loadCalendar(cmd)
			if err != nil {
				return err
			}
			next := calendar.Add(entries, entry)

			if err := app.API.Calendar().Put(cmd.Context(), calendar.StripIDs(next)); err != nil {
				return err
			}
			return app.OK(asMap(next[len(next)-1]),
				output.WithSummary("Post scheduled on %s", platform))
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "", "Target platform")
	cmd.Flags().StringVar(&caption, "caption", "", "Post caption")
	cmd.Flags().StringVar(&at, "at", "", "Schedule time")
	_ = cmd.MarkFlagRequired("platform")
	return cmd
}

func newCalendarUpdateCmd() *cobra.Command {
	var caption, at, status string

	cmd := &cobra.Command{
		Use:   "update <entry-id>",
		Short: "Edit a scheduled post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if caption == "" && at == "" && status == "" {
				return output.ErrUsage("Nothing to update; pass --caption, --at or --status")
			}

			entries, err := loadCalendar(cmd)
			if err != nil {
				return err
			}
			i := calendar.IndexOf(entries, args[0])
			if i < 0 {
				return output.ErrNotFound("Calendar entry", args[0])
			}

			entry := entries[i]
			if caption != "" {
				entry.Caption = caption
			}
			if at != "" {
				stamp, ok := dateparse.ParseStamp(at)
				if !ok {
					return output.ErrValidation("at", fmt.Sprintf("Unrecognized schedule time: %q", at))
				}
				entry.ScheduledAt = stamp
			}
			if status != "" {
				entry.Status = status
			}

			next, ok := calendar.Update(entries, entry)
			if !ok {
				return output.ErrNotFound("Calendar entry", args[0])
			}
			if err := app.API.Calendar().Put(cmd.Context(), calendar.StripIDs(next)); err != nil {
				return err
			}
			return app.OK(asMap(entry), output.WithSummary("Post %s updated", entry.EntryID))
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "New caption")
	cmd.Flags().StringVar(&at, "at", "", "New schedule time")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newCalendarDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <entry-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a scheduled post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			entries, err := loadCalendar(cmd)
			if err != nil {
				return err
			}
			if calendar.IndexOf(entries, args[0]) < 0 {
				return output.ErrNotFound("Calendar entry", args[0])
			}
			if !force {
				ok, err := confirmDelete(app, fmt.Sprintf("Remove post %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			next, ok := calendar.Remove(entries, args[0])
			if !ok {
				return output.ErrNotFound("Calendar entry", args[0])
			}
			if err := app.API.Calendar().Put(cmd.Context(), calendar.StripIDs(next)); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Post %s removed", args[0]))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func newCalendarDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <entry-id>",
		Aliases: []string{"dup"},
		Short:   "Duplicate a scheduled post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			entries, err := loadCalendar(cmd)
			if err != nil {
				return err
			}
			next, cp, ok := calendar.Duplicate(entries, args[0])
			if !ok {
				return output.ErrNotFound("Calendar entry", args[0])
			}

			if err := app.API.Calendar().Put(cmd.Context(), calendar.StripIDs(next)); err != nil {
				return err
			}
			return app.OK(asMap(cp), output.WithSummary("Post duplicated as %s", cp.EntryID))
		},
	}
}
