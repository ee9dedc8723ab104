package grid

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is how time values are stringified for matching and default display.
const DateLayout = "2006-01-02"

// MatchMode selects how a column filter compares a column's text with the
// filter value. Both modes are case-insensitive.
type MatchMode int

const (
	MatchSubstring MatchMode = iota // value contains the filter text
	MatchExact                      // value equals the filter text
)

// Column describes one field of a record type R: how to resolve it, how to
// show it, and what the user may do with it.
type Column[R any] struct {
	Key      string         // stable identifier used by filters, sorting and expressions
	Label    string         // header text
	Value    func(R) any    // raw value used for sorting, matching and expressions
	Render   func(R) string // optional display override
	Sortable bool
	Hideable bool
	Match    MatchMode
}

// Text returns the column value as a string for matching.
func (c Column[R]) Text(r R) string {
	return Stringify(c.Value(r))
}

// Display returns what a cell shows.
func (c Column[R]) Display(r R) string {
	if c.Render != nil {
		return c.Render(r)
	}
	return c.Text(r)
}

// Title returns the label, falling back to the key.
func (c Column[R]) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Stringify converts a resolved column value into text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// number reports whether v is numeric and returns it as float64.
func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// integer reports whether v is a signed integer and returns it as int64.
func integer(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

// columnIndex maps column keys to their position.
func columnIndex[R any](cols []Column[R]) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c.Key]; !dup {
			idx[c.Key] = i
		}
	}
	return idx
}
