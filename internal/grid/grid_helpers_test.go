package grid

import (
	"fmt"
	"time"
)

// deal is a small record used across the grid tests.
type deal struct {
	ID      string
	Name    string
	Company string
	Stage   string
	Value   int
	Closed  time.Time
}

func dealColumns() []Column[deal] {
	return []Column[deal]{
		{Key: "id", Label: "ID", Value: func(d deal) any { return d.ID }, Sortable: true},
		{Key: "name", Label: "Name", Value: func(d deal) any { return d.Name }, Sortable: true, Hideable: true},
		{Key: "company", Label: "Company", Value: func(d deal) any { return d.Company }, Sortable: true, Hideable: true},
		{Key: "stage", Label: "Stage", Value: func(d deal) any { return d.Stage }, Match: MatchExact, Hideable: true},
		{Key: "value", Label: "Value", Value: func(d deal) any { return d.Value }, Sortable: true},
		{Key: "closed", Label: "Closed", Value: func(d deal) any { return d.Closed }, Sortable: true, Hideable: true},
	}
}

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func sampleDeals() []deal {
	return []deal{
		{ID: "D-01", Name: "Ravi Kumar", Company: "Acme Corp", Stage: "new", Value: 1200, Closed: day(3)},
		{ID: "D-02", Name: "Anita Shah", Company: "Northwind Traders", Stage: "won", Value: 90, Closed: day(1)},
		{ID: "D-03", Name: "Bob Stone", Company: "Globex", Stage: "lost", Value: 1200, Closed: day(7)},
		{ID: "D-04", Name: "Carla Diaz", Company: "Initech", Stage: "won", Value: 15000, Closed: day(2)},
		{ID: "D-05", Name: "Dev Patel", Company: "Acme Labs", Stage: "new", Value: 300, Closed: day(9)},
	}
}

// numberedDeals builds n deals with ids D-001..; values cycle so there are ties.
func numberedDeals(n int) []deal {
	out := make([]deal, n)
	for i := range out {
		out[i] = deal{
			ID:    fmt.Sprintf("D-%03d", i+1),
			Name:  fmt.Sprintf("Contact %d", i+1),
			Stage: []string{"new", "won", "lost"}[i%3],
			Value: (i % 4) * 100,
		}
	}
	return out
}

func dealID(d deal) string { return d.ID }

func ids(rows []deal) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func newDealEngine(opts Options[deal]) *Engine[deal] {
	if opts.Columns == nil {
		opts.Columns = dealColumns()
	}
	if opts.ID == nil {
		opts.ID = dealID
	}
	e, err := New(opts)
	if err != nil {
		panic(err)
	}
	return e
}
