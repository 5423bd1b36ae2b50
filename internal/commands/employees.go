package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
)

// NewEmployeesCmd creates the employees command group. The directory
// endpoint returns everyone in one response; filtering and paging happen
// client side.
func NewEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "team"},
		Short:   "Browse the employee directory",
	}

	cmd.AddCommand(
		newEmployeesListCmd(),
		newEmployeesShowCmd(),
	)
	return cmd
}

func newEmployeesListCmd() *cobra.Command {
	var department, status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			employees, err := app.API.Employees().List(cmd.Context())
			if err != nil {
				return err
			}
			warmEmployeeCompletions(app, employees)

			filtered := make([]models.Employee, 0, len(employees))
			for _, e := range employees {
				if department != "" && !strings.EqualFold(e.Department, department) {
					continue
				}
				if status != "" && !strings.EqualFold(e.Status, status) {
					continue
				}
				if search != "" && !matchesEmployee(e, search) {
					continue
				}
				filtered = append(filtered, e)
			}

			return present(app, asMaps(filtered), "employee", false,
				output.WithSummary("%d %s", len(filtered), pluralize(len(filtered), "employee", "employees")))
		},
	}
	cmd.Flags().StringVar(&department, "department", "", "Filter by department")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, inactive)")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search on name, email and role")
	return cmd
}

func matchesEmployee(e models.Employee, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{e.Name, e.Email, e.Role, e.Department} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func newEmployeesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <id-or-name>",
		Short:             "Show an employee",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completer.EmployeeCompletion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}

			id, _, err := app.Names.ResolveEmployee(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			employee, err := app.API.Employees().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return present(app, asMap(employee), "employee", false)
		},
	}
}
