// Package version parses and orders mainline kernel version labels as they
// appear in the Ubuntu mainline PPA directory listing (e.g. "v6.10",
// "v6.1.1-rc2").
package version

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// sentinel sorts non-numeric segments after every real version number.
	sentinel = 999

	// rcOffset shifts release-candidate segments negative so that an rc
	// build orders below the final release it precedes.
	rcOffset = 1000
)

// Key converts a version label into a numeric sort key.
// The leading "v" and any trailing "/" are stripped, "-rc" is folded into a
// dotted segment, and each dot-separated part is coerced to an integer.
// Release-candidate segments ("rcN") become N-rcOffset so they order below
// the corresponding final release. Parts that are not numeric become the
// sentinel value so they sort after all real releases.
//
// Examples:
//
//	"v6.10"       -> [6 10]
//	"v6.1.1-rc2/" -> [6 1 1 -998]
//	"v6.x"        -> [6 999]
func Key(label string) []int {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(label, "v"), "/")
	trimmed = strings.ReplaceAll(trimmed, "-rc", ".rc")

	parts := strings.Split(trimmed, ".")
	key := make([]int, 0, len(parts))
	for _, part := range parts {
		rc := strings.HasPrefix(part, "rc")
		digits := strings.ReplaceAll(part, "rc", "")

		n, err := strconv.Atoi(digits)
		switch {
		case err != nil:
			n = sentinel
		case rc:
			n -= rcOffset
		}
		key = append(key, n)
	}
	return key
}

// Less reports whether label a orders before label b under numeric version
// comparison. Keys compare element-wise with missing segments treated as
// zero, so "v6.1" < "v6.1.1" while "v6.1.1-rc1" < "v6.1.1" via the negative
// rc segment.
func Less(a, b string) bool {
	ka, kb := Key(a), Key(b)
	for i := 0; i < len(ka) || i < len(kb); i++ {
		var va, vb int
		if i < len(ka) {
			va = ka[i]
		}
		if i < len(kb) {
			vb = kb[i]
		}
		if va != vb {
			return va < vb
		}
	}
	return false
}

// SortDescending sorts version labels in place from newest to oldest.
func SortDescending(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Less(labels[j], labels[i])
	})
}
