package payroll

import (
	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/records"
	"github.com/imgajeed76/erpgrid/internal/util"
)

// Payslip is an employee together with their computed month.
type Payslip struct {
	Employee records.Employee `json:"employee"`
	Pay      Breakdown        `json:"pay"`
}

func PayslipID(p Payslip) string { return p.Employee.ID }

// Register computes a payslip for every employee.
func Register(emps []records.Employee, r Rates) ([]Payslip, error) {
	out := make([]Payslip, 0, len(emps))
	for _, e := range emps {
		b, err := Compute(e.Basic, r)
		if err != nil {
			return nil, util.NewError("Cannot compute payroll").
				WithContext(e.ID + " " + e.Name).
				WithSuggestion("erpgrid config --list   # Check payroll.* settings").
				Wrap(err)
		}
		out = append(out, Payslip{Employee: e, Pay: b})
	}
	return out, nil
}

func money(key, label string, v func(Payslip) float64, hideable bool) grid.Column[Payslip] {
	return grid.Column[Payslip]{
		Key: key, Label: label,
		Value:    func(p Payslip) any { return v(p) },
		Render:   func(p Payslip) string { return util.FormatAmount(v(p)) },
		Sortable: true, Hideable: hideable,
	}
}

// Columns is the column model of the payroll register.
func Columns() []grid.Column[Payslip] {
	return []grid.Column[Payslip]{
		{Key: "id", Label: "ID", Value: func(p Payslip) any { return p.Employee.ID }, Sortable: true},
		{Key: "name", Label: "Name", Value: func(p Payslip) any { return p.Employee.Name }, Sortable: true},
		{Key: "department", Label: "Department", Value: func(p Payslip) any { return p.Employee.Department }, Sortable: true, Hideable: true, Match: grid.MatchExact},
		money("basic", "Basic", func(p Payslip) float64 { return p.Pay.Basic }, true),
		money("hra", "HRA", func(p Payslip) float64 { return p.Pay.HRA }, true),
		money("gross", "Gross", func(p Payslip) float64 { return p.Pay.Gross }, true),
		money("pf", "PF", func(p Payslip) float64 { return p.Pay.PF }, true),
		money("tds", "TDS", func(p Payslip) float64 { return p.Pay.TDS }, true),
		money("net", "Net", func(p Payslip) float64 { return p.Pay.Net }, false),
	}
}
