// Package pattern compiles user-supplied wildcard search patterns and matches
// them against lines of text.
//
// Patterns support "*" as an any-sequence wildcard and match
// case-insensitively as unanchored substrings. Other regular-expression
// metacharacters are passed through to the regexp engine unescaped, so a
// pattern like "wifi.*power" behaves as a regex. That mirrors the tool's
// historical behavior and is relied on by users who pass regex fragments.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled wildcard search pattern.
type Pattern struct {
	// Raw is the pattern string as supplied by the user.
	Raw string

	re *regexp.Regexp
}

// Compile translates a wildcard pattern into a case-insensitive, unanchored
// regular expression. Returns an error if the translated expression does not
// compile (e.g. an unbalanced bracket in the user input).
func Compile(raw string) (Pattern, error) {
	expr := "(?i)" + strings.ReplaceAll(raw, "*", ".*")
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", raw, err)
	}
	return Pattern{Raw: raw, re: re}, nil
}

// Match reports whether the pattern matches anywhere in line.
func (p Pattern) Match(line string) bool {
	return p.re.MatchString(line)
}

// Set is an ordered collection of compiled patterns. Order matters: line
// matching stops at the first pattern that hits.
type Set struct {
	patterns []Pattern
}

// CompileSet compiles each raw pattern in order. The first pattern that fails
// to compile aborts the whole set.
func CompileSet(raw []string) (Set, error) {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		p, err := Compile(r)
		if err != nil {
			return Set{}, err
		}
		patterns = append(patterns, p)
	}
	return Set{patterns: patterns}, nil
}

// Len returns the number of patterns in the set.
func (s Set) Len() int {
	return len(s.patterns)
}

// Raw returns the original pattern strings in order.
func (s Set) Raw() []string {
	raw := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		raw[i] = p.Raw
	}
	return raw
}

// MatchLine tests the line against each pattern in order and returns the
// first pattern that matches. A line that matches several patterns is still
// attributed to exactly one.
func (s Set) MatchLine(line string) (Pattern, bool) {
	for _, p := range s.patterns {
		if p.Match(line) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Highlight wraps every occurrence of every pattern in line using the given
// wrap function. Patterns are applied in order, so overlapping spans may be
// wrapped more than once; that matches how matches are emphasized in the
// console report.
func (s Set) Highlight(line string, wrap func(string) string) string {
	for _, p := range s.patterns {
		line = p.re.ReplaceAllStringFunc(line, wrap)
	}
	return line
}
