package grid

import (
	"slices"
	"strings"
	"time"

	"github.com/Knetic/govaluate"
)

// ColumnFilter keeps rows whose column Key matches Value.
type ColumnFilter struct {
	Key   string
	Value string
}

// FilterState is everything that narrows the row set. Column filters, the
// global query and the expression are ANDed together.
type FilterState struct {
	Columns []ColumnFilter
	Query   string // global fuzzy query across visible columns
	Expr    string // govaluate boolean expression over column keys
}

// Empty reports whether the state lets every row through.
func (f FilterState) Empty() bool {
	return len(f.Columns) == 0 && strings.TrimSpace(f.Query) == "" && strings.TrimSpace(f.Expr) == ""
}

// With returns a copy with the filter for key set to value. An empty value
// removes the filter.
func (f FilterState) With(key, value string) FilterState {
	out := f
	out.Columns = nil
	replaced := false
	for _, cf := range f.Columns {
		if cf.Key == key {
			if value != "" && !replaced {
				out.Columns = append(out.Columns, ColumnFilter{Key: key, Value: value})
				replaced = true
			}
			continue
		}
		out.Columns = append(out.Columns, cf)
	}
	if !replaced && value != "" {
		out.Columns = append(out.Columns, ColumnFilter{Key: key, Value: value})
	}
	return out
}

// Value returns the filter value set for key.
func (f FilterState) Value(key string) string {
	for _, cf := range f.Columns {
		if cf.Key == key {
			return cf.Value
		}
	}
	return ""
}

// MatchOptions tunes how a FilterState is evaluated.
type MatchOptions struct {
	Threshold Rank            // minimum rank for the global query (default RankMatches)
	Hidden    map[string]bool // hidden columns do not take part in the global query
}

// Matcher is a FilterState compiled against a column model.
type Matcher[R any] struct {
	cols    []Column[R]
	filters []compiledFilter[R]
	search  []Column[R]
	query   string
	opts    MatchOptions
	expr    *govaluate.EvaluableExpression
	exprErr error
	closed  bool // a filter can never match
}

type compiledFilter[R any] struct {
	col   Column[R]
	value string
}

// NewMatcher compiles state. Unknown column keys and an invalid expression
// make the matcher reject every row; Err reports the expression problem.
func NewMatcher[R any](cols []Column[R], state FilterState, opts MatchOptions) *Matcher[R] {
	m := &Matcher[R]{cols: cols, opts: opts, query: strings.TrimSpace(state.Query)}
	idx := columnIndex(cols)

	for _, cf := range state.Columns {
		if cf.Value == "" {
			continue
		}
		i, ok := idx[cf.Key]
		if !ok {
			m.closed = true
			continue
		}
		m.filters = append(m.filters, compiledFilter[R]{col: cols[i], value: strings.ToLower(cf.Value)})
	}

	for _, c := range cols {
		if !opts.Hidden[c.Key] {
			m.search = append(m.search, c)
		}
	}

	if expr := strings.TrimSpace(state.Expr); expr != "" {
		m.expr, m.exprErr = govaluate.NewEvaluableExpression(expr)
		if m.exprErr != nil {
			m.closed = true
		}
	}
	return m
}

// Err returns the expression compile error, if any.
func (m *Matcher[R]) Err() error {
	return m.exprErr
}

// Match reports whether r passes every filter.
func (m *Matcher[R]) Match(r R) bool {
	if m.closed {
		return false
	}
	for _, f := range m.filters {
		text := strings.ToLower(f.col.Text(r))
		switch f.col.Match {
		case MatchExact:
			if text != f.value {
				return false
			}
		default:
			if !strings.Contains(text, f.value) {
				return false
			}
		}
	}
	if m.query != "" && !m.Best(r).Passed(m.opts.Threshold) {
		return false
	}
	if m.expr != nil && !m.evaluate(r) {
		return false
	}
	return true
}

// Best returns the highest ranked match of the query over visible columns.
func (m *Matcher[R]) Best(r R) Match {
	best := Match{Rank: RankNoMatch}
	if m.query == "" {
		return best
	}
	for _, c := range m.search {
		if mt := RankMatch(c.Text(r), m.query); mt.Better(best) {
			best = mt
		}
	}
	return best
}

// Apply returns the rows that match, in input order.
func (m *Matcher[R]) Apply(rows []R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByRank orders rows by their best query match, best first. Ties keep
// input order.
func (m *Matcher[R]) SortByRank(rows []R) []R {
	type ranked struct {
		row   R
		match Match
	}
	rs := make([]ranked, len(rows))
	for i, r := range rows {
		rs[i] = ranked{row: r, match: m.Best(r)}
	}
	slices.SortStableFunc(rs, func(a, b ranked) int {
		switch {
		case a.match.Better(b.match):
			return -1
		case b.match.Better(a.match):
			return 1
		}
		return 0
	})
	out := make([]R, len(rs))
	for i, r := range rs {
		out[i] = r.row
	}
	return out
}

func (m *Matcher[R]) evaluate(r R) bool {
	params := make(map[string]interface{}, len(m.cols))
	for _, c := range m.cols {
		params[c.Key] = exprValue(c.Value(r))
	}
	result, err := m.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// exprValue converts column values into types govaluate can compare. Times
// become unix seconds, which is what govaluate turns date literals into.
func exprValue(v any) any {
	if f, ok := number(v); ok {
		return f
	}
	switch t := v.(type) {
	case time.Time:
		return float64(t.Unix())
	case *time.Time:
		if t == nil {
			return nil
		}
		return float64(t.Unix())
	case string, bool, nil:
		return t
	}
	return Stringify(v)
}

// Filter applies state to rows and returns the survivors in input order.
func Filter[R any](rows []R, cols []Column[R], state FilterState, opts MatchOptions) []R {
	return NewMatcher(cols, state, opts).Apply(rows)
}
