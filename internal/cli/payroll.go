package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/config"
	"github.com/imgajeed76/erpgrid/internal/payroll"
	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"github.com/imgajeed76/erpgrid/internal/util"
	"github.com/spf13/cobra"
)

func newPayrollCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Show the payroll register",
		Long: `Show every employee's monthly pay breakdown: HRA, gross, PF, TDS and net.

Rates come from the payroll section of the config (erpgrid config --list).

Examples:
  erpgrid payroll -f department=Engineering --sort net:desc
  erpgrid payroll calc 50000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}
			rates := cfg.Rates()
			pick := func(ds *records.Dataset) ([]payroll.Payslip, error) {
				return payroll.Register(ds.Employees, rates)
			}
			return runList(cmd, &f, "Payroll", payroll.Columns(), payroll.PayslipID, pick)
		},
	}

	addListFlags(cmd, &f)
	cmd.AddCommand(newPayrollCalcCmd())

	return cmd
}

func newPayrollCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <basic>",
		Short: "Compute the breakdown for one monthly basic pay",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return util.MissingArgumentError("basic", "erpgrid payroll calc 50000")
			}
			if len(args) > 1 {
				return util.TooManyArgumentsError(1, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")

			basic, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
			if err != nil {
				return util.NewError(fmt.Sprintf("Invalid basic pay: %q", args[0])).Wrap(util.ErrInvalidAmount)
			}

			cfg, err := config.LoadGlobal()
			if err != nil {
				return err
			}
			b, err := payroll.Compute(basic, cfg.Rates())
			if err != nil {
				return util.NewError("Cannot compute payroll").
					WithSuggestion("erpgrid config --list   # Check the payroll rates").
					Wrap(err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}

			lines := []struct {
				label string
				value float64
			}{
				{"Basic", b.Basic},
				{"HRA", b.HRA},
				{"Gross", b.Gross},
				{"PF", b.PF},
				{"Annual taxable", b.AnnualTaxable},
				{"Annual tax", b.AnnualTax},
				{"TDS", b.TDS},
			}
			for _, l := range lines {
				fmt.Fprintf(out, "%-16s %14s\n", l.label, util.FormatAmount(l.value))
			}
			fmt.Fprintf(out, "%s %s\n", styles.Boldf("%-16s", "Net"), styles.Greenf("%14s", util.FormatAmount(b.Net)))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output the breakdown as JSON")

	return cmd
}
