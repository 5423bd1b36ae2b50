package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewClientsCmd creates the clients command group.
func NewClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage agency clients",
	}

	cmd.AddCommand(
		newClientsListCmd(),
		newClientsShowCmd(),
		newClientsCreateCmd(),
		newClientsUpdateCmd(),
		newClientsDeleteCmd(),
	)
	return cmd
}

func newClientsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			clients, err := app.API.Clients().List(cmd.Context())
			if err != nil {
				return err
			}
			warmClientCompletions(app, clients)

			if search != "" {
				needle := strings.ToLower(search)
				filtered := clients[:0]
				for _, c := range clients {
					if strings.Contains(strings.ToLower(c.Name), needle) ||
						strings.Contains(strings.ToLower(c.Company), needle) {
						filtered = append(filtered, c)
					}
				}
				clients = filtered
			}

			return present(app, asMaps(clients), "client", false,
				output.WithSummary("%d %s", len(clients), pluralize(len(clients), "client", "clients")))
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Free-text search on name and company")
	return cmd
}

func newClientsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <id-or-name>",
		Short:             "Show a client",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completer.ClientCompletion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			id, _, err := app.Names.ResolveClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			record, err := app.API.Clients().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(record), "client", false)
		},
	}
}

func newClientsCreateCmd() *cobra.Command {
	var name, company, email, phone string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			record := models.Client{
				Name:    name,
				Company: company,
				Email:   email,
				Phone:   phone,
			}
			if err := app.API.Clients().Create(cmd.Context(), record); err != nil {
				return err
			}
			app.Names.ClearCache()
			return app.OK(nil, output.WithSummary("Client %q created", name))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClientsUpdateCmd() *cobra.Command {
	var name, company, email, phone string

	cmd := &cobra.Command{
		Use:               "update <id-or-name>",
		Short:             "Edit a client",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completer.ClientCompletion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, _, err := app.Names.ResolveClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if name == "" && company == "" && email == "" && phone == "" {
				return output.ErrUsage("Nothing to update")
			}

			record, err := app.API.Clients().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if name != "" {
				record.Name = name
			}
			if company != "" {
				record.Company = company
			}
			if email != "" {
				record.Email = email
			}
			if phone != "" {
				record.Phone = phone
			}

			if err := app.API.Clients().Update(cmd.Context(), id, record); err != nil {
				return err
			}
			app.Names.ClearCache()
			return app.OK(asMap(record), output.WithSummary("Client %d updated", id))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New contact name")
	cmd.Flags().StringVar(&company, "company", "", "New company name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")
	return cmd
}

func newClientsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete <id-or-name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a client",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completer.ClientCompletion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			id, name, err := app.Names.ResolveClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !force {
				label := name
				if label == "" {
					label = fmt.Sprintf("client %d", id)
				}
				ok, err := confirmDelete(app, fmt.Sprintf("Delete %s?", label))
				if err != nil {
					return err
				}
				if !ok {
					return app.OK(nil, output.WithSummary("Canceled"))
				}
			}

			if err := app.API.Clients().Delete(cmd.Context(), id); err != nil {
				return err
			}
			app.Names.ClearCache()
			return app.OK(nil, output.WithSummary("Client %d deleted", id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
