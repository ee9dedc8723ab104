// Package payroll computes monthly salary breakdowns from a basic pay and a
// set of configurable rates.
package payroll

import (
	"errors"
	"fmt"
	"math"

	"github.com/imgajeed76/erpgrid/internal/util"
)

var (
	ErrNegativeBasic = errors.New("payroll: basic pay is negative")
	ErrPercent       = errors.New("payroll: percentage outside 0-100")
	ErrSlabOrder     = errors.New("payroll: tax slabs must be ascending")
)

// Slab taxes the part of annual income up to UpTo at Percent. The last slab
// has UpTo 0 and is unbounded.
type Slab struct {
	UpTo    float64 `toml:"up_to"`
	Percent float64 `toml:"percent"`
}

// Rates are the inputs a breakdown depends on besides basic pay.
type Rates struct {
	HRAPercent        float64 // of basic
	PFPercent         float64 // of basic, capped at PFWageCeiling
	PFWageCeiling     float64 // 0 means no cap
	StandardDeduction float64 // annual
	Slabs             []Slab
}

// DefaultSlabs is the annual income tax table used when none is configured.
func DefaultSlabs() []Slab {
	return []Slab{
		{UpTo: 250000, Percent: 0},
		{UpTo: 500000, Percent: 5},
		{UpTo: 1000000, Percent: 20},
		{UpTo: 0, Percent: 30},
	}
}

// DefaultRates returns the rates used when config leaves them unset.
func DefaultRates() Rates {
	return Rates{
		HRAPercent:        40,
		PFPercent:         12,
		StandardDeduction: 50000,
		Slabs:             DefaultSlabs(),
	}
}

// Validate checks percentages and slab order.
func (r Rates) Validate() error {
	for name, p := range map[string]float64{"hra": r.HRAPercent, "pf": r.PFPercent} {
		if p < 0 || p > 100 {
			return fmt.Errorf("%w: %s %.2f", ErrPercent, name, p)
		}
	}
	if r.PFWageCeiling < 0 || r.StandardDeduction < 0 {
		return fmt.Errorf("%w: ceiling and deduction must not be negative", util.ErrInvalidAmount)
	}
	prev := 0.0
	for i, s := range r.Slabs {
		if s.Percent < 0 || s.Percent > 100 {
			return fmt.Errorf("%w: slab %d %.2f", ErrPercent, i+1, s.Percent)
		}
		last := i == len(r.Slabs)-1
		if s.UpTo == 0 && !last {
			return fmt.Errorf("%w: only the last slab may be unbounded", ErrSlabOrder)
		}
		if s.UpTo != 0 && s.UpTo <= prev {
			return fmt.Errorf("%w: slab %d ends at %.0f", ErrSlabOrder, i+1, s.UpTo)
		}
		prev = s.UpTo
	}
	return nil
}

// Breakdown is one month of pay. Annual figures are what the monthly TDS is
// derived from.
type Breakdown struct {
	Basic         float64 `json:"basic"`
	HRA           float64 `json:"hra"`
	PF            float64 `json:"pf"`
	Gross         float64 `json:"gross"`
	AnnualTaxable float64 `json:"annual_taxable"`
	AnnualTax     float64 `json:"annual_tax"`
	TDS           float64 `json:"tds"`
	Net           float64 `json:"net"`
}

// Compute derives the monthly breakdown for a monthly basic pay:
//
//	HRA   = basic × HRA%
//	PF    = min(basic, ceiling) × PF%
//	Gross = basic + HRA
//	tax   = slabs(12 × Gross − standard deduction)
//	TDS   = tax / 12
//	Net   = Gross − PF − TDS
func Compute(basic float64, r Rates) (Breakdown, error) {
	if basic < 0 || math.IsNaN(basic) || math.IsInf(basic, 0) {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrNegativeBasic, basic)
	}
	if err := r.Validate(); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{Basic: basic}
	b.HRA = round(basic * r.HRAPercent / 100)

	pfWage := basic
	if r.PFWageCeiling > 0 {
		pfWage = min(pfWage, r.PFWageCeiling)
	}
	b.PF = round(pfWage * r.PFPercent / 100)

	b.Gross = round(b.Basic + b.HRA)
	b.AnnualTaxable = max(0, round(b.Gross*12-r.StandardDeduction))
	b.AnnualTax = round(tax(b.AnnualTaxable, r.Slabs))
	b.TDS = round(b.AnnualTax / 12)
	b.Net = round(b.Gross - b.PF - b.TDS)
	return b, nil
}

func tax(income float64, slabs []Slab) float64 {
	total, lower := 0.0, 0.0
	for _, s := range slabs {
		upper := s.UpTo
		if upper == 0 || upper > income {
			upper = income
		}
		if upper > lower {
			total += (upper - lower) * s.Percent / 100
		}
		if s.UpTo == 0 || s.UpTo >= income {
			break
		}
		lower = s.UpTo
	}
	return total
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
