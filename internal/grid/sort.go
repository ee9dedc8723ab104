package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Direction is the sort order of one column.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	}
	return "none"
}

// Next is the direction a header click moves to: asc, desc, then none.
func (d Direction) Next() Direction {
	switch d {
	case None:
		return Asc
	case Asc:
		return Desc
	}
	return None
}

// ParseDirection accepts asc/ascending, desc/descending and none.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	case "none":
		return None, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// SortKey orders by one column.
type SortKey struct {
	Key       string
	Direction Direction
}

// SortState is applied key by key; earlier keys take precedence.
type SortState []SortKey

// Direction returns the direction of key, or None.
func (s SortState) Direction(key string) Direction {
	for _, k := range s {
		if k.Key == key {
			return k.Direction
		}
	}
	return None
}

// Active reports whether any key sorts.
func (s SortState) Active() bool {
	for _, k := range s {
		if k.Direction != None {
			return true
		}
	}
	return false
}

// Toggle cycles key through asc, desc and none. Toggling a column other than
// the active one drops the previous sort and starts the new column at asc.
func (s SortState) Toggle(key string) SortState {
	next := s.Direction(key).Next()
	if next == None {
		return nil
	}
	return SortState{{Key: key, Direction: next}}
}

// String renders the state as "key:dir,key:dir".
func (s SortState) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s {
		if k.Direction != None {
			parts = append(parts, k.Key+":"+k.Direction.String())
		}
	}
	return strings.Join(parts, ",")
}

// ParseSort parses "key[:asc|desc][,key[:dir]]...".
func ParseSort(spec string) (SortState, error) {
	var out SortState
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, dir, _ := strings.Cut(part, ":")
		d, err := ParseDirection(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, SortKey{Key: strings.TrimSpace(key), Direction: d})
	}
	return out, nil
}

// Sort returns a stably sorted copy of rows. Unknown and unsortable keys are
// skipped; with no usable key the input order is returned unchanged.
func Sort[R any](rows []R, cols []Column[R], state SortState) []R {
	out := slices.Clone(rows)

	type resolved struct {
		col  Column[R]
		desc bool
	}
	idx := columnIndex(cols)
	var keys []resolved
	for _, k := range state {
		i, ok := idx[k.Key]
		if !ok || k.Direction == None || !cols[i].Sortable {
			continue
		}
		keys = append(keys, resolved{col: cols[i], desc: k.Direction == Desc})
	}
	if len(keys) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b R) int {
		for _, k := range keys {
			c := Compare(k.col.Value(a), k.col.Value(b))
			if c == 0 {
				continue
			}
			if k.desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

// Compare orders two column values: numbers numerically, times
// chronologically, bools false first, strings byte-wise. Nil sorts first and
// anything else falls back to comparing text.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	if x, ok := integer(a); ok {
		if y, ok := integer(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp.Compare(x, y)
		}
	}
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}
	return strings.Compare(Stringify(a), Stringify(b))
}
