package grid

import "slices"

// Store is the canonical ordered collection of records a view renders from.
type Store[R any] struct {
	rows []R
	id   func(R) string
}

// NewStore copies rows into a new store keyed by id.
func NewStore[R any](rows []R, id func(R) string) *Store[R] {
	return &Store[R]{rows: slices.Clone(rows), id: id}
}

// ID returns the identifier of r.
func (s *Store[R]) ID(r R) string {
	return s.id(r)
}

// All returns a copy of the rows in store order.
func (s *Store[R]) All() []R {
	return slices.Clone(s.rows)
}

// Len returns the number of rows.
func (s *Store[R]) Len() int {
	return len(s.rows)
}

// Index returns the position of the first row with the given id, or -1.
func (s *Store[R]) Index(id string) int {
	for i, r := range s.rows {
		if s.id(r) == id {
			return i
		}
	}
	return -1
}

// Get returns the first row with the given id.
func (s *Store[R]) Get(id string) (R, bool) {
	if i := s.Index(id); i >= 0 {
		return s.rows[i], true
	}
	var zero R
	return zero, false
}

// Replace swaps the whole collection.
func (s *Store[R]) Replace(rows []R) {
	s.rows = slices.Clone(rows)
}

// Delete removes the first row with the given id.
func (s *Store[R]) Delete(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.rows = slices.Delete(s.rows, i, i+1)
	return true
}

// RowDiff is how a replacement row set differs from the store, by id.
type RowDiff struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the row sets hold the same records.
func (d RowDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffRows compares rows against the store. A record is changed when any
// column renders different text. Added and Changed follow the order of rows,
// Removed the order of the store.
func DiffRows[R any](s *Store[R], cols []Column[R], rows []R) RowDiff {
	var d RowDiff
	current := make(map[string]R, len(s.rows))
	for _, r := range s.rows {
		if id := s.ID(r); !hasKey(current, id) {
			current[id] = r
		}
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		id := s.ID(r)
		seen[id] = true
		old, ok := current[id]
		if !ok {
			d.Added = append(d.Added, id)
			continue
		}
		for _, c := range cols {
			if c.Text(old) != c.Text(r) {
				d.Changed = append(d.Changed, id)
				break
			}
		}
	}
	for _, r := range s.rows {
		if id := s.ID(r); !seen[id] {
			d.Removed = append(d.Removed, id)
		}
	}
	return d
}

func hasKey[R any](m map[string]R, k string) bool {
	_, ok := m[k]
	return ok
}
