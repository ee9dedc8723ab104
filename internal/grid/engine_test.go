package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_Validates(t *testing.T) {
	cols := dealColumns()
	dup := append(dealColumns(), Column[deal]{Key: "name", Value: func(d deal) any { return d.Name }})
	noValue := append(dealColumns(), Column[deal]{Key: "owner"})

	tests := []struct {
		name string
		opts Options[deal]
		want error
	}{
		{"no columns", Options[deal]{ID: dealID}, ErrNoColumns},
		{"no id", Options[deal]{Columns: cols}, ErrNoID},
		{"duplicate key", Options[deal]{Columns: dup, ID: dealID}, ErrDuplicateColumn},
		{"missing value", Options[deal]{Columns: noValue, ID: dealID}, ErrNoValue},
	}
	for _, tt := range tests {
		if _, err := New(tt.opts); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestEngine_PageSizeResetsIndex(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(25)})
	e.GotoPage(3)
	if e.Page().CurrentPage != 3 {
		t.Fatalf("expected page 3, got %d", e.Page().CurrentPage)
	}

	if err := e.SetPageSize(5); err != nil {
		t.Fatal(err)
	}
	p := e.Page()
	if p.CurrentPage != 1 || p.TotalPages != 5 || len(p.Rows) != 5 {
		t.Fatalf("unexpected page after resize: %+v", p)
	}

	if err := e.SetPageSize(0); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if e.PageSize() != 5 {
		t.Fatalf("rejected size must not apply, got %d", e.PageSize())
	}
}

func TestEngine_PageClampedWhenFilterShrinks(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(25)})
	e.LastPage()
	if e.Page().CurrentPage != 3 {
		t.Fatalf("expected last page 3, got %d", e.Page().CurrentPage)
	}

	e.SetColumnFilter("stage", "won")

	p := e.Page()
	if p.TotalPages != 1 || p.CurrentPage != 1 || len(p.Rows) != 8 {
		t.Fatalf("unexpected page after filtering: %+v", p)
	}
}

func TestEngine_Navigation(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(95)})

	e.PrevPage()
	if e.Page().CurrentPage != 1 {
		t.Fatalf("prev on first page moved to %d", e.Page().CurrentPage)
	}
	e.GotoPage(5)
	if diff := cmp.Diff([]int{3, 4, 5, 6, 7}, e.PageNumbers()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	e.LastPage()
	e.NextPage()
	if e.Page().CurrentPage != 10 {
		t.Fatalf("next on last page moved to %d", e.Page().CurrentPage)
	}
	if got := len(e.Page().Rows); got != 5 {
		t.Fatalf("last page rows = %d, want 5", got)
	}
	e.FirstPage()
	if e.Page().Rows[0].ID != "D-001" {
		t.Fatalf("first page starts at %s", e.Page().Rows[0].ID)
	}
}

func TestEngine_NoResults(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: sampleDeals()})
	e.SetQuery("zzzzqqq")

	p := e.Page()
	if !p.Empty() || p.CurrentPage != 0 || len(e.PageNumbers()) != 0 {
		t.Fatalf("expected the no-results state, got %+v", p)
	}
	if e.HeaderState() != Unchecked {
		t.Fatalf("empty page header = %s", e.HeaderState())
	}
}

func TestEngine_HeaderTriState(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(25)})

	if e.HeaderState() != Unchecked {
		t.Fatalf("initial header = %s", e.HeaderState())
	}

	e.ToggleRow("D-002")
	if e.HeaderState() != Indeterminate {
		t.Fatalf("one selected header = %s", e.HeaderState())
	}

	e.ToggleAllOnPage()
	if e.HeaderState() != Checked || e.SelectedCount() != 10 {
		t.Fatalf("all selected header = %s, count %d", e.HeaderState(), e.SelectedCount())
	}

	// selections live across pages
	e.NextPage()
	if e.HeaderState() != Unchecked {
		t.Fatalf("second page header = %s", e.HeaderState())
	}
	e.PrevPage()

	e.ToggleAllOnPage()
	if e.HeaderState() != Unchecked || e.SelectedCount() != 0 {
		t.Fatalf("after toggling off header = %s, count %d", e.HeaderState(), e.SelectedCount())
	}
}

func TestEngine_ToggleAllFiltered(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(25)})
	e.SetColumnFilter("stage", "new")

	e.ToggleAllFiltered()
	if e.SelectedCount() != 9 {
		t.Fatalf("selected %d, want 9", e.SelectedCount())
	}
	for _, d := range e.Selected() {
		if d.Stage != "new" {
			t.Fatalf("selected a row outside the filter: %+v", d)
		}
	}

	e.ToggleAllFiltered()
	if e.SelectedCount() != 0 {
		t.Fatalf("second toggle left %d selected", e.SelectedCount())
	}
}

func TestEngine_SelectionPrunedByFilter(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: sampleDeals()})
	e.ToggleRow("D-01")
	e.ToggleRow("D-02")

	e.SetColumnFilter("stage", "new")
	if e.IsSelected("D-02") {
		t.Fatal("D-02 is filtered out and should be deselected")
	}
	if !e.IsSelected("D-01") {
		t.Fatal("D-01 is still visible and should stay selected")
	}

	e.SetColumnFilter("stage", "")
	if e.IsSelected("D-02") {
		t.Fatal("pruned selection must not come back")
	}

	e.ToggleRow("D-99")
	if e.SelectedCount() != 1 {
		t.Fatalf("unknown id changed the selection: %d", e.SelectedCount())
	}
}

func TestEngine_SetHidden(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: sampleDeals()})

	if err := e.SetHidden("region", true); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if err := e.SetHidden("value", true); !errors.Is(err, ErrNotHideable) {
		t.Fatalf("expected ErrNotHideable, got %v", err)
	}

	e.SetQuery("globex")
	if e.Total() != 1 {
		t.Fatalf("expected Globex to match, got %d", e.Total())
	}
	if err := e.ToggleHidden("company"); err != nil {
		t.Fatal(err)
	}
	if e.Total() != 0 {
		t.Fatalf("hidden company column still searched, got %d", e.Total())
	}
	for _, c := range e.VisibleColumns() {
		if c.Key == "company" {
			t.Fatal("company should not be visible")
		}
	}
}

func TestEngine_RankOrder(t *testing.T) {
	rows := []deal{
		{ID: "C1", Company: "Xacmex"},
		{ID: "C2", Company: "Globex Acme"},
		{ID: "C3", Company: "Acme"},
	}

	plain := newDealEngine(Options[deal]{Rows: rows})
	plain.SetQuery("acme")
	if diff := cmp.Diff([]string{"C1", "C2", "C3"}, ids(plain.Filtered())); diff != "" {
		t.Fatalf("without rank order (-want +got):\n%s", diff)
	}

	ranked := newDealEngine(Options[deal]{Rows: rows, RankOrder: true})
	ranked.SetQuery("acme")
	if diff := cmp.Diff([]string{"C3", "C2", "C1"}, ids(ranked.Filtered())); diff != "" {
		t.Fatalf("with rank order (-want +got):\n%s", diff)
	}

	// an explicit sort wins over rank
	ranked.ToggleSort("id")
	if diff := cmp.Diff([]string{"C1", "C2", "C3"}, ids(ranked.Filtered())); diff != "" {
		t.Fatalf("sorted (-want +got):\n%s", diff)
	}
}

func TestEngine_InvalidExpression(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: sampleDeals()})

	if err := e.SetExpr("value >"); err == nil {
		t.Fatal("expected a compile error")
	}
	if e.Total() != 0 {
		t.Fatalf("invalid expression should show nothing, got %d", e.Total())
	}

	if err := e.SetExpr("value > 1000"); err != nil {
		t.Fatal(err)
	}
	if e.Total() != 3 {
		t.Fatalf("expected 3 rows, got %d", e.Total())
	}
}

func TestEngine_DispatchEvents(t *testing.T) {
	var got []Action
	e := newDealEngine(Options[deal]{
		Rows:     sampleDeals(),
		OnAction: func(a Action) { got = append(got, a) },
	})

	for _, kind := range []ActionKind{ActionView, ActionEdit, ActionSelect, ActionDelete, "archive"} {
		if err := e.DispatchID(kind, "D-03"); err != nil {
			t.Fatal(err)
		}
	}

	want := []Action{
		{Kind: ActionView, RecordID: "D-03"},
		{Kind: ActionEdit, RecordID: "D-03"},
		{Kind: ActionSelect, RecordID: "D-03"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !e.IsSelected("D-03") {
		t.Fatal("select action should toggle the row")
	}
	if err := e.DispatchID(ActionView, "D-99"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEngine_DeleteNeedsConfirmation(t *testing.T) {
	var deleted []string
	var events int
	e := newDealEngine(Options[deal]{
		Rows:     sampleDeals(),
		OnAction: func(Action) { events++ },
		OnDelete: func(id string) error {
			deleted = append(deleted, id)
			return nil
		},
	})
	e.ToggleRow("D-02")

	_ = e.DispatchID(ActionDelete, "D-02")
	if id, ok := e.PendingDelete(); !ok || id != "D-02" {
		t.Fatalf("pending = %q, %v", id, ok)
	}
	if len(deleted) != 0 || events != 0 {
		t.Fatalf("nothing may happen before confirmation: deleted=%v events=%d", deleted, events)
	}

	e.CancelDelete()
	if _, ok := e.PendingDelete(); ok {
		t.Fatal("cancel should clear the pending delete")
	}
	if err := e.ConfirmDelete(); !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("confirm without pending: %v", err)
	}
	if len(deleted) != 0 {
		t.Fatalf("cancelled delete reached the collaborator: %v", deleted)
	}

	_ = e.DispatchID(ActionDelete, "D-02")
	if err := e.ConfirmDelete(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"D-02"}, deleted); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if _, ok := e.Store().Get("D-02"); ok {
		t.Fatal("confirmed delete should drop the row")
	}
	if e.IsSelected("D-02") || e.Total() != 4 {
		t.Fatalf("selected=%v total=%d after delete", e.IsSelected("D-02"), e.Total())
	}
	if err := e.ConfirmDelete(); !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("second confirm: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("collaborator called %d times", len(deleted))
	}
}

func TestEngine_DeleteFailureKeepsRow(t *testing.T) {
	boom := errors.New("locked")
	e := newDealEngine(Options[deal]{
		Rows:     sampleDeals(),
		OnDelete: func(string) error { return boom },
	})

	_ = e.DispatchID(ActionDelete, "D-01")
	if err := e.ConfirmDelete(); !errors.Is(err, boom) {
		t.Fatalf("expected collaborator error, got %v", err)
	}
	if _, ok := e.PendingDelete(); ok {
		t.Fatal("pending state should clear after a failed delete")
	}
	if e.Total() != 5 {
		t.Fatalf("row removed despite failure, total %d", e.Total())
	}
}

func TestEngine_SetRowsRevalidates(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: numberedDeals(30)})
	e.LastPage()
	e.ToggleRow("D-030")

	e.SetRows(numberedDeals(12))

	p := e.Page()
	if p.CurrentPage != 2 || p.TotalPages != 2 {
		t.Fatalf("unexpected page after replacing rows: %+v", p)
	}
	if e.IsSelected("D-030") {
		t.Fatal("selection of a removed row should be dropped")
	}
}

func TestDiffRows(t *testing.T) {
	e := newDealEngine(Options[deal]{Rows: sampleDeals()[:3]})

	next := sampleDeals()
	next[1].Stage = "lost" // D-02 changed
	next = append(next[1:2], next[3:]...)

	d := DiffRows(e.Store(), e.Columns(), next)

	if diff := cmp.Diff(RowDiff{
		Added:   []string{"D-04", "D-05"},
		Removed: []string{"D-01", "D-03"},
		Changed: []string{"D-02"},
	}, d); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !DiffRows(e.Store(), e.Columns(), sampleDeals()[:3]).Empty() {
		t.Fatal("identical rows should not differ")
	}
}
