package grid

// CheckState is the header checkbox state of a page.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

func (c CheckState) String() string {
	switch c {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	}
	return "unchecked"
}

// Selection is a set of record ids.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Add(ids ...string) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Toggle flips id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// Retain drops every id not in keep.
func (s *Selection) Retain(keep map[string]struct{}) int {
	dropped := 0
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
			dropped++
		}
	}
	return dropped
}

// State returns the header checkbox state for the given page ids.
func (s *Selection) State(pageIDs []string) CheckState {
	n := 0
	for _, id := range pageIDs {
		if s.Has(id) {
			n++
		}
	}
	switch {
	case n == 0:
		return Unchecked
	case n == len(pageIDs):
		return Checked
	}
	return Indeterminate
}
