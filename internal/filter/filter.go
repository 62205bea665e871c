// Package filter implements rsync-style exclusion globs for tree walks.
package filter

// Set holds an ordered list of exclusion patterns.
type Set struct {
	patterns []*compiledPattern
}

// NewSet creates an empty exclusion set.
func NewSet() *Set {
	return &Set{}
}

// Add compiles pattern and appends it to the set.
func (s *Set) Add(pattern string) error {
	cp, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, cp)
	return nil
}

// AddAll adds every pattern, stopping at the first compile error.
func (s *Set) AddAll(patterns []string) error {
	for _, p := range patterns {
		if err := s.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the set has no patterns.
func (s *Set) Empty() bool {
	return len(s.patterns) == 0
}

// Excluded reports whether relPath should be skipped. relPath is relative
// to the walk root; isDir gates directory-only patterns.
func (s *Set) Excluded(relPath string, isDir bool) bool {
	for _, p := range s.patterns {
		if p.match(relPath, isDir) {
			return true
		}
	}
	return false
}
