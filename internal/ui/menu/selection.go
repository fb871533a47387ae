package menu

// Selection is the set of chosen identifiers in the order they were chosen
type Selection struct {
	order []string
	index map[string]bool
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{index: make(map[string]bool)}
}

// Toggle adds id if absent and removes it otherwise. It reports whether id is now chosen.
func (s *Selection) Toggle(id string) bool {
	if s.index[id] {
		delete(s.index, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}
	s.index[id] = true
	s.order = append(s.order, id)
	return true
}

// Has reports whether id is chosen
func (s *Selection) Has(id string) bool {
	return s.index[id]
}

// Len returns the number of chosen identifiers
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns a copy of the chosen identifiers in selection order
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.order = nil
	s.index = make(map[string]bool)
}
