package grid

const (
	DefaultPageSize   = 10
	DefaultWindowSize = 5
)

// PageState selects one page of the sorted, filtered rows.
type PageState struct {
	Size  int // rows per page, > 0
	Index int // zero-based
}

// PageResult is one rendered page. An empty row set has zero pages and a
// CurrentPage of 0; that is the "no results" state, not an error.
type PageResult[R any] struct {
	Rows        []R
	Total       int // rows across all pages
	TotalPages  int
	PageIndex   int // zero-based, clamped
	CurrentPage int // one-based, 0 when there are no pages
}

// Empty reports whether there is nothing to show.
func (p PageResult[R]) Empty() bool {
	return p.Total == 0
}

// TotalPages returns ceil(count/size).
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// ClampIndex keeps a page index inside [0, totalPages-1].
func ClampIndex(index, count, size int) int {
	last := TotalPages(count, size) - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Paginate slices rows to the page selected by state. Out-of-range indexes
// are clamped rather than rejected.
func Paginate[R any](rows []R, state PageState) PageResult[R] {
	size := state.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	res := PageResult[R]{
		Total:      len(rows),
		TotalPages: TotalPages(len(rows), size),
		PageIndex:  ClampIndex(state.Index, len(rows), size),
	}
	if res.TotalPages == 0 {
		res.Rows = []R{}
		return res
	}
	res.CurrentPage = res.PageIndex + 1

	start := res.PageIndex * size
	end := min(start+size, len(rows))
	res.Rows = rows[start:end:end]
	return res
}

// VisiblePageNumbers returns the page-number buttons to show around
// currentPage (one-based). The window slides with the current page and is
// re-anchored near the last page so it keeps windowSize buttons whenever
// totalPages allows.
func VisiblePageNumbers(currentPage, totalPages, windowSize int) []int {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	start := max(1, currentPage-windowSize/2)
	end := min(totalPages, start+windowSize-1)
	if end-start+1 < windowSize {
		start = max(1, end-windowSize+1)
	}
	if end < start {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
