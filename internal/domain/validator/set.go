package validator

import "strings"

// orderedSet keeps distinct strings in first-insertion order.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) join(sep string) string {
	return strings.Join(s.items, sep)
}
