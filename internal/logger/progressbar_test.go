package logger

import (
	"strings"
	"testing"
)

// TestProgressBarRender verifies the bar string at various completion points
func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		current int
		want    string
	}{
		{
			name:    "empty",
			total:   10,
			current: 0,
			want:    "[          ] 0/10 (0%)",
		},
		{
			name:    "half",
			total:   10,
			current: 5,
			want:    "[=====     ] 5/10 (50%)",
		},
		{
			name:    "complete",
			total:   10,
			current: 10,
			want:    "[==========] 10/10 (100%)",
		},
		{
			name:    "zero total",
			total:   0,
			current: 0,
			want:    "[          ] 0/0 (0%)",
		},
		{
			name:    "overshoot clamps to 100",
			total:   4,
			current: 9,
			want:    "[==========] 9/4 (100%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, 10, false)
			pb.Update(tt.current)

			if got := pb.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestProgressBarIncrement verifies Increment advances the counter
func TestProgressBarIncrement(t *testing.T) {
	pb := NewProgressBar(3, 10, false)
	pb.Increment()
	pb.Increment()

	if pb.Current() != 2 {
		t.Errorf("Current() = %d, want 2", pb.Current())
	}
	if pb.Percentage() != 66 {
		t.Errorf("Percentage() = %d, want 66", pb.Percentage())
	}
}

// TestProgressBarColor verifies ANSI codes appear only when color is enabled
func TestProgressBarColor(t *testing.T) {
	pb := NewProgressBar(10, 10, true)
	pb.Update(5)
	if !strings.Contains(pb.Render(), "\033[36m") {
		t.Error("in-progress bar should render cyan when color enabled")
	}

	pb.Update(10)
	if !strings.Contains(pb.Render(), "\033[32m") {
		t.Error("complete bar should render green when color enabled")
	}

	plain := NewProgressBar(10, 10, false)
	plain.Update(5)
	if strings.Contains(plain.Render(), "\033[") {
		t.Error("bar should not contain ANSI codes when color disabled")
	}
}

// TestProgressBarPrefix verifies a custom prefix is rendered
func TestProgressBarPrefix(t *testing.T) {
	pb := NewProgressBar(2, 10, false)
	pb.SetPrefix("Directories ")
	pb.Update(1)

	if !strings.HasPrefix(pb.Render(), "Directories [") {
		t.Errorf("Render() = %q, want prefix", pb.Render())
	}
}
