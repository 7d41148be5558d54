package discover

// Set is an insertion-ordered set of region identifiers. It keeps the
// first occurrence of each region so batches run in input order.
type Set struct {
	items []string
	seen  map[string]bool
}

// NewSet creates a Set holding regions in order, skipping repeats.
func NewSet(regions ...string) *Set {
	s := &Set{seen: make(map[string]bool, len(regions))}
	for _, r := range regions {
		s.Add(r)
	}
	return s
}

// Add appends region if it hasn't been seen before and reports whether it did.
func (s *Set) Add(region string) bool {
	if s.seen[region] {
		return false
	}
	s.seen[region] = true
	s.items = append(s.items, region)
	return true
}

// Len returns the number of unique regions.
func (s *Set) Len() int {
	return len(s.items)
}

// All returns the regions in insertion order.
func (s *Set) All() []string {
	return s.items
}
