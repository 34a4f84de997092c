package filter

import "sort"

// NameSet collects directory names that the scanner must never descend
// into. Names match exactly (no globbing): skip lists target well-known
// system and cache directory names, not paths.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet creates a set seeded with the given names.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a name. Empty names are ignored.
func (s *NameSet) Add(name string) {
	if name == "" {
		return
	}
	s.names[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s *NameSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Slice returns the names sorted, for stable option handoff and display.
func (s *NameSet) Slice() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
