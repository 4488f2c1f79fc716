package version

import (
	"reflect"
	"testing"
)

// TestKey verifies numeric key extraction from version labels
func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  []int
	}{
		{
			name:  "simple release",
			label: "v6.10",
			want:  []int{6, 10},
		},
		{
			name:  "patch release",
			label: "v6.1.1",
			want:  []int{6, 1, 1},
		},
		{
			name:  "release candidate",
			label: "v6.1.1-rc2",
			want:  []int{6, 1, 1, 2 - rcOffset},
		},
		{
			name:  "trailing slash from listing href",
			label: "v5.19/",
			want:  []int{5, 19},
		},
		{
			name:  "non-numeric segment uses sentinel",
			label: "v6.x",
			want:  []int{6, sentinel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.label)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Key(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

// TestLess verifies ordering between individual version labels
func TestLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"v6.2", "v6.10", true},     // numeric, not lexicographic
		{"v6.10", "v6.2", false},
		{"v6.1.1-rc1", "v6.2", true},
		{"v6.1.1-rc1", "v6.1.1", true}, // rc sorts below final release
		{"v6.1.1", "v6.1.1-rc1", false},
		{"v6.1", "v6.1.1", true},
		{"v6.2", "v6.2", false},
	}

	for _, tt := range tests {
		if got := Less(tt.a, tt.b); got != tt.want {
			t.Errorf("Less(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestSortDescending verifies newest-first ordering of a mixed label set
func TestSortDescending(t *testing.T) {
	labels := []string{"v6.1.1-rc1", "v6.10", "v6.2", "v5.19", "v6.10-rc3"}
	SortDescending(labels)

	want := []string{"v6.10", "v6.10-rc3", "v6.2", "v6.1.1-rc1", "v5.19"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("SortDescending() = %v, want %v", labels, want)
	}
}
