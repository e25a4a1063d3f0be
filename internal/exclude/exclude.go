package exclude

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Set holds the relative page paths an operator wants skipped. Members are
// either exact paths or doublestar glob patterns; both are compared against
// the normalized forward-slash relative path of a page directory.
type Set struct {
	exact map[string]bool
	globs []string
}

// New returns an empty Set.
func New() *Set {
	return &Set{exact: make(map[string]bool)}
}

// Add registers an exact relative path.
func (s *Set) Add(rel string) {
	s.exact[rel] = true
}

// AddGlob registers a glob pattern. The pattern is validated up front so a
// bad pattern fails the run instead of silently matching nothing.
func (s *Set) AddGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid exclude glob: %q", pattern)
	}
	s.globs = append(s.globs, pattern)
	return nil
}

// Match reports whether rel is excluded, by exact membership or by any
// registered glob.
func (s *Set) Match(rel string) bool {
	if s.exact[rel] {
		return true
	}
	for _, g := range s.globs {
		// Patterns are pre-validated, so the error is unreachable
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// Len returns the number of registered paths and patterns.
func (s *Set) Len() int {
	return len(s.exact) + len(s.globs)
}
