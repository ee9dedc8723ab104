// Package grid is a client-side table engine: a row store pushed through a
// filter stage (column filters, fuzzy global query, expressions), a stable
// sort stage and a pagination stage, plus row selection and action dispatch.
//
// One Engine serves one view. It is not safe for concurrent use; all state
// changes are expected to happen on the goroutine that renders the view.
package grid

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Options configures an Engine.
type Options[R any] struct {
	Columns    []Column[R]
	ID         func(R) string // stable record identifier
	Rows       []R
	PageSize   int  // default DefaultPageSize
	WindowSize int  // page-number buttons, default DefaultWindowSize
	Threshold  Rank // minimum global-query rank, default RankMatches
	RankOrder  bool // order by query rank when no sort key is active

	OnAction func(Action)          // view, edit and select events
	OnDelete func(id string) error // called once per confirmed delete
	Logger   *zap.Logger
}

// Engine holds the state of one table view and derives the rendered page
// from it on demand.
type Engine[R any] struct {
	cols   []Column[R]
	index  map[string]int
	store  *Store[R]
	hidden map[string]bool

	filter    FilterState
	sort      SortState
	page      PageState
	window    int
	threshold Rank
	rankOrder bool

	selection  *Selection
	pending    string
	hasPending bool

	onAction func(Action)
	onDelete func(string) error
	log      *zap.Logger

	dirty    bool
	matcher  *Matcher[R]
	filtered []R
	view     PageResult[R]
}

// New validates opts and builds an engine.
func New[R any](opts Options[R]) (*Engine[R], error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if opts.ID == nil {
		return nil, ErrNoID
	}
	seen := make(map[string]bool, len(opts.Columns))
	for _, c := range opts.Columns {
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Key)
		}
		if c.Value == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoValue, c.Key)
		}
		seen[c.Key] = true
	}

	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	window := opts.WindowSize
	if window <= 0 {
		window = DefaultWindowSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine[R]{
		cols:      append([]Column[R](nil), opts.Columns...),
		index:     columnIndex(opts.Columns),
		store:     NewStore(opts.Rows, opts.ID),
		hidden:    make(map[string]bool),
		page:      PageState{Size: size},
		window:    window,
		threshold: opts.Threshold,
		rankOrder: opts.RankOrder,
		selection: NewSelection(),
		onAction:  opts.OnAction,
		onDelete:  opts.OnDelete,
		log:       log,
		dirty:     true,
	}, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Row store
// ═══════════════════════════════════════════════════════════════════════════

// Store exposes the underlying row store.
func (e *Engine[R]) Store() *Store[R] {
	return e.store
}

// Rows returns all rows in store order, ignoring filters.
func (e *Engine[R]) Rows() []R {
	return e.store.All()
}

// SetRows replaces the row store. Page index and selection are re-validated
// against the new rows on the next read.
func (e *Engine[R]) SetRows(rows []R) {
	e.store.Replace(rows)
	e.dirty = true
}

// ID returns the identifier of r.
func (e *Engine[R]) ID(r R) string {
	return e.store.ID(r)
}

// ═══════════════════════════════════════════════════════════════════════════
// Columns
// ═══════════════════════════════════════════════════════════════════════════

// Columns returns every declared column.
func (e *Engine[R]) Columns() []Column[R] {
	return append([]Column[R](nil), e.cols...)
}

// Column looks up a column by key.
func (e *Engine[R]) Column(key string) (Column[R], bool) {
	i, ok := e.index[key]
	if !ok {
		return Column[R]{}, false
	}
	return e.cols[i], true
}

// VisibleColumns returns the columns that are not hidden, in declared order.
func (e *Engine[R]) VisibleColumns() []Column[R] {
	out := make([]Column[R], 0, len(e.cols))
	for _, c := range e.cols {
		if !e.hidden[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// Hidden reports whether key is hidden.
func (e *Engine[R]) Hidden(key string) bool {
	return e.hidden[key]
}

// SetHidden hides or shows a hideable column.
func (e *Engine[R]) SetHidden(key string, hidden bool) error {
	c, ok := e.Column(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if !c.Hideable {
		return fmt.Errorf("%w: %s", ErrNotHideable, key)
	}
	if e.hidden[key] == hidden {
		return nil
	}
	if hidden {
		e.hidden[key] = true
	} else {
		delete(e.hidden, key)
	}
	// the global query only searches visible columns
	if strings.TrimSpace(e.filter.Query) != "" {
		e.dirty = true
	}
	return nil
}

// ToggleHidden flips the visibility of key.
func (e *Engine[R]) ToggleHidden(key string) error {
	return e.SetHidden(key, !e.hidden[key])
}

// ═══════════════════════════════════════════════════════════════════════════
// Filter stage
// ═══════════════════════════════════════════════════════════════════════════

// FilterState returns a copy of the current filters.
func (e *Engine[R]) FilterState() FilterState {
	f := e.filter
	f.Columns = append([]ColumnFilter(nil), e.filter.Columns...)
	return f
}

// SetFilterState replaces all filters at once.
func (e *Engine[R]) SetFilterState(f FilterState) error {
	f.Columns = append([]ColumnFilter(nil), f.Columns...)
	e.filter = f
	e.dirty = true
	return e.FilterErr()
}

// SetQuery sets the global fuzzy query.
func (e *Engine[R]) SetQuery(q string) {
	if e.filter.Query == q {
		return
	}
	e.filter.Query = q
	e.dirty = true
}

// SetColumnFilter filters key by value; an empty value removes the filter.
// A key that names no column makes the view empty rather than failing.
func (e *Engine[R]) SetColumnFilter(key, value string) {
	if _, ok := e.index[key]; !ok && value != "" {
		e.log.Debug("grid: filter on unknown column", zap.String("column", key))
	}
	e.filter = e.filter.With(key, value)
	e.dirty = true
}

// SetExpr sets the expression filter and returns its compile error. An
// invalid expression matches no rows until it is replaced.
func (e *Engine[R]) SetExpr(expr string) error {
	e.filter.Expr = expr
	e.dirty = true
	return e.FilterErr()
}

// FilterErr returns the current expression compile error, if any.
func (e *Engine[R]) FilterErr() error {
	e.refresh()
	return e.matcher.Err()
}

// ClearFilters removes every filter.
func (e *Engine[R]) ClearFilters() {
	e.filter = FilterState{}
	e.dirty = true
}

// Match returns the best query match of r over the visible columns.
func (e *Engine[R]) Match(r R) Match {
	e.refresh()
	return e.matcher.Best(r)
}

// ═══════════════════════════════════════════════════════════════════════════
// Sort stage
// ═══════════════════════════════════════════════════════════════════════════

// SortState returns a copy of the current sort keys.
func (e *Engine[R]) SortState() SortState {
	return append(SortState(nil), e.sort...)
}

// ToggleSort is a header click: asc, desc, then none. Clicking another
// column resets the previous one. Unsortable and unknown keys are ignored.
func (e *Engine[R]) ToggleSort(key string) {
	c, ok := e.Column(key)
	if !ok || !c.Sortable {
		e.log.Debug("grid: sort toggle ignored", zap.String("column", key))
		return
	}
	e.sort = e.sort.Toggle(key)
	e.dirty = true
}

// SetSort replaces the sort keys.
func (e *Engine[R]) SetSort(s SortState) {
	e.sort = append(SortState(nil), s...)
	e.dirty = true
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination stage
// ═══════════════════════════════════════════════════════════════════════════

// PageSize returns the rows per page.
func (e *Engine[R]) PageSize() int {
	return e.page.Size
}

// SetPageSize changes the rows per page and goes back to the first page.
func (e *Engine[R]) SetPageSize(n int) error {
	if n <= 0 {
		e.log.Debug("grid: page size rejected", zap.Int("size", n))
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	e.page = PageState{Size: n}
	e.dirty = true
	return nil
}

// SetPage moves to a zero-based page index, clamped to the available pages.
func (e *Engine[R]) SetPage(index int) {
	e.refresh()
	e.page.Index = ClampIndex(index, len(e.filtered), e.page.Size)
	e.view = Paginate(e.filtered, e.page)
}

// GotoPage moves to a one-based page number.
func (e *Engine[R]) GotoPage(number int) {
	e.SetPage(number - 1)
}

func (e *Engine[R]) NextPage()  { e.SetPage(e.page.Index + 1) }
func (e *Engine[R]) PrevPage()  { e.SetPage(e.page.Index - 1) }
func (e *Engine[R]) FirstPage() { e.SetPage(0) }
func (e *Engine[R]) LastPage()  { e.SetPage(TotalPages(e.Total(), e.page.Size) - 1) }

// Page returns the current page of the filtered, sorted rows.
func (e *Engine[R]) Page() PageResult[R] {
	e.refresh()
	return e.view
}

// PageNumbers returns the page-number window around the current page.
func (e *Engine[R]) PageNumbers() []int {
	p := e.Page()
	return VisiblePageNumbers(p.CurrentPage, p.TotalPages, e.window)
}

// Filtered returns every row that passes the filters, in sorted order.
func (e *Engine[R]) Filtered() []R {
	e.refresh()
	return append([]R(nil), e.filtered...)
}

// Total returns the number of rows that pass the filters.
func (e *Engine[R]) Total() int {
	e.refresh()
	return len(e.filtered)
}

// ═══════════════════════════════════════════════════════════════════════════
// Selection
// ═══════════════════════════════════════════════════════════════════════════

// IsSelected reports whether the row with id is selected.
func (e *Engine[R]) IsSelected(id string) bool {
	e.refresh()
	return e.selection.Has(id)
}

// ToggleRow flips the selection of one row. Ids outside the filtered set
// are ignored.
func (e *Engine[R]) ToggleRow(id string) {
	e.refresh()
	if !e.inFiltered(id) {
		return
	}
	e.selection.Toggle(id)
}

// ToggleAllOnPage selects every row on the page, or clears them when they
// are all selected already.
func (e *Engine[R]) ToggleAllOnPage() {
	ids := e.pageIDs()
	if e.selection.State(ids) == Checked {
		e.selection.Remove(ids...)
		return
	}
	e.selection.Add(ids...)
}

// ToggleAllFiltered does the same for every filtered row across pages.
func (e *Engine[R]) ToggleAllFiltered() {
	e.refresh()
	ids := make([]string, len(e.filtered))
	for i, r := range e.filtered {
		ids[i] = e.store.ID(r)
	}
	if len(ids) > 0 && e.selection.State(ids) == Checked {
		e.selection.Remove(ids...)
		return
	}
	e.selection.Add(ids...)
}

// ClearSelection deselects everything.
func (e *Engine[R]) ClearSelection() {
	e.selection.Clear()
}

// HeaderState derives the page checkbox state from the selection.
func (e *Engine[R]) HeaderState() CheckState {
	return e.selection.State(e.pageIDs())
}

// Selected returns the selected rows in view order.
func (e *Engine[R]) Selected() []R {
	e.refresh()
	var out []R
	for _, r := range e.filtered {
		if e.selection.Has(e.store.ID(r)) {
			out = append(out, r)
		}
	}
	return out
}

// SelectedCount returns the number of selected filtered rows.
func (e *Engine[R]) SelectedCount() int {
	e.refresh()
	return e.selection.Len()
}

func (e *Engine[R]) pageIDs() []string {
	p := e.Page()
	ids := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		ids[i] = e.store.ID(r)
	}
	return ids
}

func (e *Engine[R]) inFiltered(id string) bool {
	for _, r := range e.filtered {
		if e.store.ID(r) == id {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════
// Action dispatch
// ═══════════════════════════════════════════════════════════════════════════

// Dispatch routes a row action. Delete only opens a confirmation; select
// toggles the row before the event goes out.
func (e *Engine[R]) Dispatch(kind ActionKind, r R) {
	id := e.store.ID(r)
	switch kind {
	case ActionDelete:
		e.pending = id
		e.hasPending = true
		e.log.Debug("grid: delete pending", zap.String("id", id))
		return
	case ActionSelect:
		e.ToggleRow(id)
	case ActionView, ActionEdit:
	default:
		e.log.Debug("grid: unknown action", zap.String("kind", string(kind)), zap.String("id", id))
		return
	}
	e.log.Debug("grid: dispatch", zap.String("kind", string(kind)), zap.String("id", id))
	if e.onAction != nil {
		e.onAction(Action{Kind: kind, RecordID: id})
	}
}

// DispatchID dispatches an action for the record with the given id.
func (e *Engine[R]) DispatchID(kind ActionKind, id string) error {
	r, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	e.Dispatch(kind, r)
	return nil
}

// PendingDelete returns the id awaiting delete confirmation.
func (e *Engine[R]) PendingDelete() (string, bool) {
	return e.pending, e.hasPending
}

// ConfirmDelete runs the delete collaborator for the pending id and, when it
// succeeds, drops the row from the store. The pending state is cleared
// either way.
func (e *Engine[R]) ConfirmDelete() error {
	if !e.hasPending {
		return ErrNoPendingDelete
	}
	id := e.pending
	e.CancelDelete()

	if e.onDelete != nil {
		if err := e.onDelete(id); err != nil {
			e.log.Debug("grid: delete failed", zap.String("id", id), zap.Error(err))
			return err
		}
	}
	e.store.Delete(id)
	e.selection.Remove(id)
	e.dirty = true
	e.log.Debug("grid: deleted", zap.String("id", id))
	return nil
}

// CancelDelete drops the pending delete without side effects.
func (e *Engine[R]) CancelDelete() {
	e.pending = ""
	e.hasPending = false
}

// ═══════════════════════════════════════════════════════════════════════════
// Pipeline
// ═══════════════════════════════════════════════════════════════════════════

// refresh recomputes the derived view when any input changed: store →
// filter → sort → paginate. It also clamps the page index and prunes
// selections that fell out of the filtered set.
func (e *Engine[R]) refresh() {
	if !e.dirty {
		return
	}
	e.matcher = NewMatcher(e.cols, e.filter, MatchOptions{Threshold: e.threshold, Hidden: e.hidden})
	filtered := e.matcher.Apply(e.store.rows)

	switch {
	case e.sort.Active():
		filtered = Sort(filtered, e.cols, e.sort)
	case e.rankOrder && strings.TrimSpace(e.filter.Query) != "":
		filtered = e.matcher.SortByRank(filtered)
	}
	e.filtered = filtered

	if idx := ClampIndex(e.page.Index, len(filtered), e.page.Size); idx != e.page.Index {
		e.log.Debug("grid: page clamped", zap.Int("from", e.page.Index), zap.Int("to", idx))
		e.page.Index = idx
	}
	e.view = Paginate(filtered, e.page)

	keep := make(map[string]struct{}, len(filtered))
	for _, r := range filtered {
		keep[e.store.ID(r)] = struct{}{}
	}
	if n := e.selection.Retain(keep); n > 0 {
		e.log.Debug("grid: pruned selection", zap.Int("dropped", n))
	}
	e.dirty = false
}
