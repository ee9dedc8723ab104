package cli

import (
	"time"

	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/spf13/cobra"
)

func newLeadsCmd() *cobra.Command {
	var f listFlags
	var owner string

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List sales leads",
		Long: `List sales leads in a searchable, sortable, paged table.

Examples:
  erpgrid leads                                  # Interactive viewer
  erpgrid leads -q acme                          # Fuzzy search
  erpgrid leads -f status=won --sort value:desc  # Won leads, biggest first
  erpgrid leads --where "value > 100000"         # Expression filter
  erpgrid leads --owner "Priya Nair"             # One sales manager's leads
  erpgrid leads --source leads.yaml --watch      # Reload the file on change`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := "Leads"
			if owner != "" {
				title = "Leads owned by " + owner
			}
			pick := func(ds *records.Dataset) ([]records.Lead, error) {
				if owner == "" {
					return ds.Leads, nil
				}
				return records.LeadsOwnedBy(ds.Leads, owner), nil
			}
			return runList(cmd, &f, title, records.LeadColumns(), records.LeadID, pick)
		},
	}

	addListFlags(cmd, &f)
	cmd.Flags().StringVar(&owner, "owner", "", "Only leads owned by this sales manager")

	return cmd
}

func newApprovalsCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "List approval requests",
		Long: `List approval requests (expenses, leave, purchases) in a table.

Examples:
  erpgrid approvals -f status=pending
  erpgrid approvals --where "amount >= 50000" --sort submitted:desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pick := func(ds *records.Dataset) ([]records.Approval, error) {
				return ds.Approvals, nil
			}
			return runList(cmd, &f, "Approvals", records.ApprovalColumns(time.Now()), records.ApprovalID, pick)
		},
	}

	addListFlags(cmd, &f)

	return cmd
}

func newEmployeesCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		Long: `List employees with their department and basic pay.

Examples:
  erpgrid employees -f department=engineering
  erpgrid employees --sort basic:desc --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pick := func(ds *records.Dataset) ([]records.Employee, error) {
				return ds.Employees, nil
			}
			return runList(cmd, &f, "Employees", records.EmployeeColumns(), records.EmployeeID, pick)
		},
	}

	addListFlags(cmd, &f)

	return cmd
}
