// Package records holds the ERP record types erpgrid browses, their column
// models for the grid engine, and the sources they are loaded from.
package records

import "time"

// Lead is a sales lead.
type Lead struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Company   string    `json:"company" yaml:"company" toml:"company"`
	Email     string    `json:"email" yaml:"email" toml:"email"`
	Phone     string    `json:"phone" yaml:"phone" toml:"phone"`
	Source    string    `json:"source" yaml:"source" toml:"source"`
	Status    string    `json:"status" yaml:"status" toml:"status"`
	Owner     string    `json:"owner" yaml:"owner" toml:"owner"`
	Value     float64   `json:"value" yaml:"value" toml:"value"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}

// Approval is a request waiting on a manager.
type Approval struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Kind        string    `json:"kind" yaml:"kind" toml:"kind"`
	Requester   string    `json:"requester" yaml:"requester" toml:"requester"`
	Amount      float64   `json:"amount" yaml:"amount" toml:"amount"`
	Status      string    `json:"status" yaml:"status" toml:"status"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at" toml:"submitted_at"`
}

// Employee is one payroll register entry. Basic is the monthly basic pay.
type Employee struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Department  string  `json:"department" yaml:"department" toml:"department"`
	Designation string  `json:"designation" yaml:"designation" toml:"designation"`
	Basic       float64 `json:"basic" yaml:"basic" toml:"basic"`
}

// Dataset is everything one source provides.
type Dataset struct {
	Leads     []Lead     `json:"leads" yaml:"leads" toml:"leads"`
	Approvals []Approval `json:"approvals" yaml:"approvals" toml:"approvals"`
	Employees []Employee `json:"employees" yaml:"employees" toml:"employees"`
}

// Lead statuses
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusWon       = "won"
	StatusLost      = "lost"
)

// Approval statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func LeadID(l Lead) string         { return l.ID }
func ApprovalID(a Approval) string { return a.ID }
func EmployeeID(e Employee) string { return e.ID }

// LeadsOwnedBy returns the leads assigned to owner, compared case-insensitively.
func LeadsOwnedBy(leads []Lead, owner string) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if equalFold(l.Owner, owner) {
			out = append(out, l)
		}
	}
	return out
}
