package records

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/imgajeed76/erpgrid/internal/grid"
	"github.com/imgajeed76/erpgrid/internal/util"
)

var upper = cases.Upper(language.Und)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// statusLabel renders a status for display; sorting and filtering keep the
// raw value.
func statusLabel(s string) string {
	return upper.String(s)
}

// LeadColumns is the column model of the leads views.
func LeadColumns() []grid.Column[Lead] {
	return []grid.Column[Lead]{
		{Key: "id", Label: "ID", Value: func(l Lead) any { return l.ID }, Sortable: true},
		{Key: "name", Label: "Name", Value: func(l Lead) any { return l.Name }, Sortable: true},
		{Key: "company", Label: "Company", Value: func(l Lead) any { return l.Company }, Sortable: true, Hideable: true},
		{Key: "email", Label: "Email", Value: func(l Lead) any { return l.Email }, Hideable: true},
		{Key: "phone", Label: "Phone", Value: func(l Lead) any { return l.Phone }, Hideable: true},
		{Key: "source", Label: "Source", Value: func(l Lead) any { return l.Source }, Sortable: true, Hideable: true, Match: grid.MatchExact},
		{
			Key: "status", Label: "Status",
			Value:    func(l Lead) any { return l.Status },
			Render:   func(l Lead) string { return statusLabel(l.Status) },
			Sortable: true, Match: grid.MatchExact,
		},
		{Key: "owner", Label: "Owner", Value: func(l Lead) any { return l.Owner }, Sortable: true, Hideable: true},
		{
			Key: "value", Label: "Value",
			Value:    func(l Lead) any { return l.Value },
			Render:   func(l Lead) string { return util.FormatAmount(l.Value) },
			Sortable: true, Hideable: true,
		},
		{Key: "created", Label: "Created", Value: func(l Lead) any { return l.CreatedAt }, Sortable: true, Hideable: true},
	}
}

// ApprovalColumns is the column model of the approvals view. now anchors the
// relative "submitted" rendering.
func ApprovalColumns(now time.Time) []grid.Column[Approval] {
	return []grid.Column[Approval]{
		{Key: "id", Label: "ID", Value: func(a Approval) any { return a.ID }, Sortable: true},
		{Key: "title", Label: "Title", Value: func(a Approval) any { return a.Title }, Sortable: true},
		{Key: "kind", Label: "Kind", Value: func(a Approval) any { return a.Kind }, Sortable: true, Hideable: true, Match: grid.MatchExact},
		{Key: "requester", Label: "Requester", Value: func(a Approval) any { return a.Requester }, Sortable: true, Hideable: true},
		{
			Key: "amount", Label: "Amount",
			Value:    func(a Approval) any { return a.Amount },
			Render:   func(a Approval) string { return util.FormatAmount(a.Amount) },
			Sortable: true, Hideable: true,
		},
		{
			Key: "status", Label: "Status",
			Value:    func(a Approval) any { return a.Status },
			Render:   func(a Approval) string { return statusLabel(a.Status) },
			Sortable: true, Match: grid.MatchExact,
		},
		{
			Key: "submitted", Label: "Submitted",
			Value:    func(a Approval) any { return a.SubmittedAt },
			Render:   func(a Approval) string { return util.RelativeTime(a.SubmittedAt, now) },
			Sortable: true, Hideable: true,
		},
	}
}

// EmployeeColumns is the column model of the employee list.
func EmployeeColumns() []grid.Column[Employee] {
	return []grid.Column[Employee]{
		{Key: "id", Label: "ID", Value: func(e Employee) any { return e.ID }, Sortable: true},
		{Key: "name", Label: "Name", Value: func(e Employee) any { return e.Name }, Sortable: true},
		{Key: "department", Label: "Department", Value: func(e Employee) any { return e.Department }, Sortable: true, Hideable: true, Match: grid.MatchExact},
		{Key: "designation", Label: "Designation", Value: func(e Employee) any { return e.Designation }, Sortable: true, Hideable: true},
		{
			Key: "basic", Label: "Basic",
			Value:    func(e Employee) any { return e.Basic },
			Render:   func(e Employee) string { return util.FormatAmount(e.Basic) },
			Sortable: true, Hideable: true,
		},
	}
}
