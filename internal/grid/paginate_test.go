package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVisiblePageNumbers(t *testing.T) {
	tests := []struct {
		current, total, window int
		want                   []int
	}{
		{1, 10, 5, []int{1, 2, 3, 4, 5}},
		{10, 10, 5, []int{6, 7, 8, 9, 10}},
		{5, 10, 5, []int{3, 4, 5, 6, 7}},
		{9, 10, 5, []int{6, 7, 8, 9, 10}},
		{2, 3, 5, []int{1, 2, 3}},
		{1, 1, 5, []int{1}},
		{4, 10, 4, []int{2, 3, 4, 5}},
		{0, 0, 5, nil},
	}
	for _, tt := range tests {
		got := VisiblePageNumbers(tt.current, tt.total, tt.window)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("VisiblePageNumbers(%d, %d, %d) (-want +got):\n%s", tt.current, tt.total, tt.window, diff)
		}
	}
}

func TestVisiblePageNumbers_WindowProperties(t *testing.T) {
	for window := 1; window <= 7; window++ {
		for total := 1; total <= 30; total++ {
			for current := 1; current <= total; current++ {
				pages := VisiblePageNumbers(current, total, window)

				if len(pages) != min(window, total) {
					t.Fatalf("(%d,%d,%d): len %d, want %d", current, total, window, len(pages), min(window, total))
				}
				found := false
				for i, p := range pages {
					if p < 1 || p > total {
						t.Fatalf("(%d,%d,%d): page %d out of range", current, total, window, p)
					}
					if i > 0 && p != pages[i-1]+1 {
						t.Fatalf("(%d,%d,%d): not consecutive: %v", current, total, window, pages)
					}
					if p == current {
						found = true
					}
				}
				if !found {
					t.Fatalf("(%d,%d,%d): current page missing from %v", current, total, window, pages)
				}
			}
		}
	}
}

func TestPaginate_CoversEveryRowOnce(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 25, 100} {
		for _, size := range []int{1, 3, 10, 50} {
			rows := numberedDeals(n)
			pages := TotalPages(n, size)

			var seen []string
			for i := 0; i < pages; i++ {
				p := Paginate(rows, PageState{Size: size, Index: i})
				if len(p.Rows) > size {
					t.Fatalf("n=%d size=%d page %d has %d rows", n, size, i, len(p.Rows))
				}
				seen = append(seen, ids(p.Rows)...)
			}
			if diff := cmp.Diff(ids(rows), seen); diff != "" {
				t.Fatalf("n=%d size=%d (-want +got):\n%s", n, size, diff)
			}
		}
	}
}

func TestPaginate_Clamps(t *testing.T) {
	rows := numberedDeals(25)

	high := Paginate(rows, PageState{Size: 10, Index: 7})
	if high.PageIndex != 2 || high.CurrentPage != 3 || len(high.Rows) != 5 {
		t.Fatalf("high index: got index %d page %d rows %d", high.PageIndex, high.CurrentPage, len(high.Rows))
	}

	low := Paginate(rows, PageState{Size: 10, Index: -3})
	if low.PageIndex != 0 || low.Rows[0].ID != "D-001" {
		t.Fatalf("negative index: got index %d", low.PageIndex)
	}

	def := Paginate(rows, PageState{})
	if len(def.Rows) != DefaultPageSize {
		t.Fatalf("zero size should use the default, got %d rows", len(def.Rows))
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]deal(nil), PageState{Size: 10, Index: 4})

	if !p.Empty() || p.TotalPages != 0 || p.CurrentPage != 0 || p.PageIndex != 0 {
		t.Fatalf("unexpected empty result: %+v", p)
	}
	if p.Rows == nil || len(p.Rows) != 0 {
		t.Fatalf("expected a non-nil empty page, got %#v", p.Rows)
	}
	if got := VisiblePageNumbers(p.CurrentPage, p.TotalPages, 5); len(got) != 0 {
		t.Fatalf("expected no page buttons, got %v", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ count, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}
