// Package cli assembles the root command and global flag handling.
package cli

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/appctx"
	"github.com/agencydesk/agencydesk/internal/commands"
	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/hostutil"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags appctx.GlobalFlags

	cmd := &cobra.Command{
		Use:           "agencydesk",
		Short:         "Back-office CLI for the agency",
		Long:          "agencydesk manages blog posts, marketing plans, employees, tasks, leads, clients and the social calendar from the terminal.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(config.FlagOverrides{
				Account:  flags.Account,
				BaseURL:  normalizeBaseURL(flags.BaseURL),
				CacheDir: flags.CacheDir,
			})
			if err != nil {
				return err
			}

			app := appctx.NewApp(cfg)
			app.Flags = flags
			app.ApplyFlags()

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	// Flags may appear anywhere on the command line.
	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	cmd.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Output as JSON")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Output data only, no envelope")
	cmd.PersistentFlags().BoolVar(&flags.IDsOnly, "ids-only", false, "Output only IDs")
	cmd.PersistentFlags().BoolVar(&flags.Count, "count", false, "Output only count")

	cmd.PersistentFlags().StringVarP(&flags.Account, "account", "a", "", "Account ID")
	cmd.PersistentFlags().StringVar(&flags.BaseURL, "base-url", "", "API base URL (e.g., localhost:8000, api.example.com)")
	cmd.PersistentFlags().StringVar(&flags.CacheDir, "cache-dir", "", "Cache directory")

	cmd.PersistentFlags().CountVarP(&flags.Verbose, "verbose", "v", "Verbose output (-v for requests, -vv for outcomes)")
	cmd.PersistentFlags().BoolVar(&flags.Stats, "stats", false, "Show session statistics")

	return cmd
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		return ""
	}
	return hostutil.Normalize(raw)
}

// Execute runs the root command and exits with the mapped code on error.
func Execute() {
	cmd := NewRootCmd()

	cmd.AddCommand(commands.NewAuthCmd())
	cmd.AddCommand(commands.NewBlogsCmd())
	cmd.AddCommand(commands.NewPlansCmd())
	cmd.AddCommand(commands.NewEmployeesCmd())
	cmd.AddCommand(commands.NewTasksCmd())
	cmd.AddCommand(commands.NewLeadsCmd())
	cmd.AddCommand(commands.NewClientsCmd())
	cmd.AddCommand(commands.NewCalendarCmd())
	cmd.AddCommand(commands.NewFiltersCmd())
	cmd.AddCommand(commands.NewConfigCmd())
	cmd.AddCommand(commands.NewDoctorCmd())
	cmd.AddCommand(commands.NewRefreshCmd())
	cmd.AddCommand(commands.NewTUICmd())

	executedCmd, err := cmd.ExecuteC()
	if err != nil {
		err = transformCobraError(err)
		apiErr := output.AsError(err)

		if app := appctx.FromContext(executedCmd.Context()); app != nil {
			_ = app.Err(err)
			os.Exit(apiErr.ExitCode())
		}

		// App not built yet (flag parse error during setup).
		pf := cmd.PersistentFlags()
		format := output.FormatAuto
		if quiet, _ := pf.GetBool("quiet"); quiet {
			format = output.FormatQuiet
		} else if jsonFlag, _ := pf.GetBool("json"); jsonFlag {
			format = output.FormatJSON
		}
		writer := output.New(output.Options{Format: format, Writer: os.Stdout})
		_ = writer.Err(err)

		os.Exit(apiErr.ExitCode())
	}
}

// transformCobraError rewrites cobra's flag errors into the structured
// usage errors the rest of the CLI emits.
func transformCobraError(err error) error {
	msg := err.Error()

	if flag, ok := strings.CutPrefix(msg, "flag needs an argument: "); ok {
		return output.ErrUsage(flag + " requires a value")
	}
	if flag, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return output.ErrUsage("Unknown option: " + flag)
	}
	if strings.HasPrefix(msg, "unknown shorthand flag: ") {
		re := regexp.MustCompile(`unknown shorthand flag: '.' in (-\w)`)
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			return output.ErrUsage("Unknown option: " + matches[1])
		}
	}
	if strings.Contains(msg, "invalid argument") {
		return output.ErrUsage(msg)
	}
	if strings.Contains(msg, "arg(s), received 0") {
		return output.ErrUsage("ID required")
	}
	if strings.HasPrefix(msg, "required flag(s) ") {
		re := regexp.MustCompile(`required flag\(s\) "([\w-]+)" not set`)
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			return output.ErrUsage(matches[1] + " required")
		}
	}

	return err
}
