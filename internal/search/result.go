// Package search runs concurrent pattern searches across the CHANGES files
// of all discovered kernel version directories and aggregates the matches.
package search

import (
	"sync"

	"github.com/harrison/kernelgrep/internal/version"
)

// Match is one line of a changes file that satisfied a search pattern.
type Match struct {
	// Line is the matched line with surrounding whitespace trimmed.
	Line string

	// Number is the 1-based line number within the fetched file.
	Number int
}

// ResultSet accumulates matches keyed by version directory. It is safe for
// concurrent use; workers append their per-directory results as they finish.
type ResultSet struct {
	mu      sync.Mutex
	matches map[string][]Match
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		matches: make(map[string][]Match),
	}
}

// Add appends matches for a directory. Empty match lists are ignored so the
// set only carries directories that actually matched.
func (rs *ResultSet) Add(dir string, matches []Match) {
	if len(matches) == 0 {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.matches[dir] = append(rs.matches[dir], matches...)
}

// Matches returns the directory for the given label. The returned slice is a
// copy.
func (rs *ResultSet) Matches(dir string) []Match {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Match, len(rs.matches[dir]))
	copy(out, rs.matches[dir])
	return out
}

// Directories returns the matched directory labels sorted newest first.
func (rs *ResultSet) Directories() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	dirs := make([]string, 0, len(rs.matches))
	for dir := range rs.matches {
		dirs = append(dirs, dir)
	}
	version.SortDescending(dirs)
	return dirs
}

// Len returns the number of directories with at least one match.
func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.matches)
}

// TotalMatches returns the match count across all directories.
func (rs *ResultSet) TotalMatches() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	total := 0
	for _, ms := range rs.matches {
		total += len(ms)
	}
	return total
}

// Equal reports whether two result sets hold the same matches for the same
// directories, regardless of the completion order that built them.
func (rs *ResultSet) Equal(other *ResultSet) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	other.mu.Lock()
	defer other.mu.Unlock()

	if len(rs.matches) != len(other.matches) {
		return false
	}
	for dir, ms := range rs.matches {
		os, found := other.matches[dir]
		if !found || len(os) != len(ms) {
			return false
		}
		for i := range ms {
			if ms[i] != os[i] {
				return false
			}
		}
	}
	return true
}
