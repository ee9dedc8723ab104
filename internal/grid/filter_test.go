package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter_EmptyStateIsIdentity(t *testing.T) {
	rows := sampleDeals()[:3]

	got := Filter(rows, dealColumns(), FilterState{}, MatchOptions{})

	if diff := cmp.Diff(ids(rows), ids(got)); diff != "" {
		t.Fatalf("empty filter changed rows (-want +got):\n%s", diff)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	states := []FilterState{
		{Query: "acme"},
		{Query: "nwtr"},
		{Columns: []ColumnFilter{{Key: "stage", Value: "won"}}},
		{Columns: []ColumnFilter{{Key: "company", Value: "ac"}}, Query: "dev"},
		{Expr: "value >= 300"},
	}
	for _, f := range states {
		once := Filter(sampleDeals(), dealColumns(), f, MatchOptions{})
		twice := Filter(once, dealColumns(), f, MatchOptions{})
		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Errorf("filter %+v not idempotent (-once +twice):\n%s", f, diff)
		}
	}
}

func TestFilter_ColumnMatchers(t *testing.T) {
	tests := []struct {
		name    string
		filters []ColumnFilter
		want    []string
	}{
		{"substring is case-insensitive", []ColumnFilter{{Key: "company", Value: "ACME"}}, []string{"D-01", "D-05"}},
		{"exact matcher", []ColumnFilter{{Key: "stage", Value: "Won"}}, []string{"D-02", "D-04"}},
		{"exact matcher rejects partial", []ColumnFilter{{Key: "stage", Value: "wo"}}, []string{}},
		{"filters are ANDed", []ColumnFilter{{Key: "company", Value: "acme"}, {Key: "stage", Value: "new"}}, []string{"D-01", "D-05"}},
		{"numeric values match as text", []ColumnFilter{{Key: "value", Value: "1200"}}, []string{"D-01", "D-03"}},
		{"empty value is ignored", []ColumnFilter{{Key: "company", Value: ""}}, []string{"D-01", "D-02", "D-03", "D-04", "D-05"}},
		{"unknown column fails closed", []ColumnFilter{{Key: "region", Value: "emea"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDeals(), dealColumns(), FilterState{Columns: tt.filters}, MatchOptions{})
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_GlobalQueryKeepsOrder(t *testing.T) {
	// D-05 matches on its company prefix, D-01 on its company prefix too;
	// order must follow the input regardless of rank.
	got := Filter(sampleDeals(), dealColumns(), FilterState{Query: "acme"}, MatchOptions{})

	if diff := cmp.Diff([]string{"D-01", "D-05"}, ids(got)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestFilter_GlobalQuerySkipsHiddenColumns(t *testing.T) {
	state := FilterState{Query: "globex"}

	visible := Filter(sampleDeals(), dealColumns(), state, MatchOptions{})
	hidden := Filter(sampleDeals(), dealColumns(), state, MatchOptions{Hidden: map[string]bool{"company": true}})

	if len(visible) != 1 || visible[0].ID != "D-03" {
		t.Fatalf("expected D-03 to match on company, got %v", ids(visible))
	}
	if len(hidden) != 0 {
		t.Fatalf("hidden column should not be searched, got %v", ids(hidden))
	}
}

func TestFilter_Threshold(t *testing.T) {
	loose := Filter(sampleDeals(), dealColumns(), FilterState{Query: "nwtr"}, MatchOptions{})
	strict := Filter(sampleDeals(), dealColumns(), FilterState{Query: "nwtr"}, MatchOptions{Threshold: RankContains})

	if diff := cmp.Diff([]string{"D-02"}, ids(loose)); diff != "" {
		t.Fatalf("scattered query (-want +got):\n%s", diff)
	}
	if len(strict) != 0 {
		t.Fatalf("contains threshold should reject scattered matches, got %v", ids(strict))
	}
}

func TestFilter_Expression(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"value > 1000", []string{"D-01", "D-03", "D-04"}},
		{"stage == 'won' && value < 1000", []string{"D-02"}},
		{"closed > '2024-03-05T00:00:00Z'", []string{"D-03", "D-05"}},
		{"missing > 1", []string{}},
	}
	for _, tt := range tests {
		m := NewMatcher(dealColumns(), FilterState{Expr: tt.expr}, MatchOptions{})
		if m.Err() != nil {
			t.Fatalf("%q: unexpected compile error %v", tt.expr, m.Err())
		}
		got := m.Apply(sampleDeals())
		if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.expr, diff)
		}
	}
}

func TestFilter_InvalidExpressionFailsClosed(t *testing.T) {
	m := NewMatcher(dealColumns(), FilterState{Expr: "value >>> ("}, MatchOptions{})

	if m.Err() == nil {
		t.Fatal("expected a compile error")
	}
	if got := m.Apply(sampleDeals()); len(got) != 0 {
		t.Fatalf("invalid expression should match nothing, got %v", ids(got))
	}
}

func TestFilterState_With(t *testing.T) {
	f := FilterState{}.With("stage", "won").With("company", "acme")
	f = f.With("stage", "lost")

	want := []ColumnFilter{{Key: "stage", Value: "lost"}, {Key: "company", Value: "acme"}}
	if diff := cmp.Diff(want, f.Columns); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	f = f.With("stage", "")
	if f.Value("stage") != "" || len(f.Columns) != 1 {
		t.Fatalf("expected stage filter removed, got %+v", f.Columns)
	}
}
