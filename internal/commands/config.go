package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change configuration",
		Long: `Inspect and change configuration.

Values are resolved in order: defaults, global config file, repo-local
.agencydesk/config.json, environment (AGENCYDESK_*), flags. "config set"
writes to the global file.`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigPathCmd(),
	)
	return cmd
}

func configAsMap(cfg *config.Config) map[string]any {
	return map[string]any{
		"base_url":      cfg.BaseURL,
		"account_id":    cfg.AccountID,
		"cache_dir":     cfg.CacheDir,
		"cache_enabled": cfg.CacheEnabled,
		"format":        cfg.Format,
		"per_page":      cfg.PerPage,
	}
}

func newConfigListCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			data := configAsMap(app.Config)
			if showSources {
				data["sources"] = app.Config.Sources
			}
			return app.OK(data)
		},
	}
	cmd.Flags().BoolVar(&showSources, "sources", false, "Show where each value came from")
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			data := configAsMap(app.Config)
			value, ok := data[args[0]]
			if !ok {
				return output.ErrUsage(fmt.Sprintf("Unknown config key %q", args[0]))
			}
			return app.OK(map[string]any{args[0]: value},
				output.WithSummary("%s = %v", args[0], value))
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := config.Set(args[0], args[1]); err != nil {
				return output.ErrUsage(err.Error())
			}
			return app.OK(nil, output.WithSummary("%s set to %s", args[0], strconv.Quote(args[1])))
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the global config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			return app.OK(map[string]any{"path": config.GlobalPath()},
				output.WithSummary("%s", config.GlobalPath()))
		},
	}
}
