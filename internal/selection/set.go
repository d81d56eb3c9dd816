package selection

// Set is the global selection: every identifier the user has selected,
// regardless of which page is currently loaded.
type Set[K comparable] map[K]struct{}

// NewSet creates a set holding ids.
func NewSet[K comparable](ids ...K) Set[K] {
	s := make(Set[K], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set[K]) Add(id K)    { s[id] = struct{}{} }
func (s Set[K]) Remove(id K) { delete(s, id) }
func (s Set[K]) Len() int    { return len(s) }

// Has reports whether id is selected. A nil set holds nothing.
func (s Set[K]) Has(id K) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s Set[K]) Clone() Set[K] {
	out := make(Set[K], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Slice returns the members in unspecified order.
func (s Set[K]) Slice() []K {
	out := make([]K, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
