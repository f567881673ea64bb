package svg

// PathStore interns path data strings. Identical strings share one id;
// ids start at 1 and follow insertion order. The empty path maps to 0 and
// is never stored.
type PathStore struct {
	ids   map[string]uint32
	paths []string
}

// NewPathStore returns an empty store.
func NewPathStore() *PathStore {
	return &PathStore{ids: make(map[string]uint32)}
}

// Intern returns the id of d, adding it if it is new.
func (s *PathStore) Intern(d string) uint32 {
	if d == "" {
		return 0
	}
	if id, ok := s.ids[d]; ok {
		return id
	}
	s.paths = append(s.paths, d)
	id := uint32(len(s.paths))
	s.ids[d] = id
	return id
}

// Path returns the path data stored under id.
func (s *PathStore) Path(id uint32) (string, bool) {
	if id == 0 || int(id) > len(s.paths) {
		return "", false
	}
	return s.paths[id-1], true
}

// Len returns the number of stored paths.
func (s *PathStore) Len() int {
	return len(s.paths)
}

// Each calls fn for every stored path in insertion order.
func (s *PathStore) Each(fn func(id uint32, d string)) {
	for i, d := range s.paths {
		fn(uint32(i+1), d)
	}
}
