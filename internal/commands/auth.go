package commands

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/tui"
)

// NewAuthCmd creates the auth command group.
func NewAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token",
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
	)
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token, account string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long: `Store an API token in the system keychain (with a file fallback).

The token can be passed with --token or piped on stdin:
  echo "$TOKEN" | agencydesk auth login --account 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			if token == "" {
				fi, err := os.Stdin.Stat()
				if err == nil && (fi.Mode()&os.ModeCharDevice) == 0 {
					scanner := bufio.NewScanner(os.Stdin)
					if scanner.Scan() {
						token = strings.TrimSpace(scanner.Text())
					}
				}
			}
			if token == "" && app.IsInteractive() {
				entered, err := tui.InputRequired("API token", "paste the token from the agency portal")
				if err != nil {
					return err
				}
				token = strings.TrimSpace(entered)
			}
			if token == "" {
				return output.ErrUsage("--token is required (or pipe the token on stdin)")
			}

			if err := app.Auth.SetToken(token, account); err != nil {
				return err
			}
			if account != "" && app.Config.AccountID == "" {
				// Remember the account so the next invocation works
				// without --account.
				if err := config.Set("account_id", account); err != nil {
					return err
				}
			}
			return app.OK(nil, output.WithSummary("Token stored"))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().StringVar(&account, "account", "", "Account ID to remember")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if err := app.Auth.ClearToken(); err != nil {
				return err
			}
			return app.OK(nil, output.WithSummary("Token removed"))
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			status := map[string]any{
				"base_url": app.Config.BaseURL,
				"account":  app.Config.AccountID,
			}
			if _, err := app.Auth.Token(cmd.Context()); err != nil {
				status["authenticated"] = false
				return app.OK(status, output.WithSummary("Not authenticated; run: agencydesk auth login"))
			}
			status["authenticated"] = true
			if os.Getenv("AGENCYDESK_TOKEN") != "" {
				status["source"] = "env"
			} else {
				status["source"] = "keychain"
			}
			return app.OK(status, output.WithSummary("Authenticated against %s", app.Config.BaseURL))
		},
	}
}
