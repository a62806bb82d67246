package timesheet

import (
	"testing"
	"time"
)

func TestStatutoryMinBreak(t *testing.T) {
	tests := []struct {
		gross int
		want  int
	}{
		{0, 0},
		{120, 15},
		{240, 15},
		{241, 30},
		{450, 30},
		{451, 60},
		{600, 60},
	}
	for _, tt := range tests {
		if got := statutoryMinBreak(tt.gross); got != tt.want {
			t.Errorf("statutoryMinBreak(%d) = %d, want %d", tt.gross, got, tt.want)
		}
	}
}

func TestMinBreakNotMet(t *testing.T) {
	cfg := testConfig()
	plan := Plan{PlannedMinutes: 480, BreakMinutes: 30}
	in := at(t, "2024-03-04 09:00")
	out := at(t, "2024-03-04 18:00")

	totals := computeTotals(cfg, in, 540, plan, false)
	flags := checkCompliance(cfg, &in, &out, 540, totals, plan)

	if !hasFlag(flags, FlagMinBreakNotMet) {
		t.Fatalf("30 minute break on a 9 hour shift must flag MIN_BREAK_NOT_MET, got %v", flags)
	}
}

func TestNightOverlapMinutes(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name string
		in   string
		out  string
		want int
	}{
		{"fully inside wrap window", "2024-03-04 22:00", "2024-03-05 06:00", 480},
		{"day shift no overlap", "2024-03-04 09:00", "2024-03-04 18:00", 0},
		{"evening tail only", "2024-03-04 17:00", "2024-03-04 22:30", 150},
		{"morning head only", "2024-03-04 04:00", "2024-03-04 09:00", 120},
		{"spans both edges", "2024-03-04 19:00", "2024-03-05 07:00", 600},
		{"out before in", "2024-03-04 18:00", "2024-03-04 09:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nightOverlapMinutes(cfg, at(t, tt.in), at(t, tt.out))
			if got != tt.want {
				t.Fatalf("overlap = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNightWindowWithoutWrap(t *testing.T) {
	cfg := testConfig()
	cfg.NightStartMin = 0
	cfg.NightEndMin = 6 * 60

	got := nightOverlapMinutes(cfg, at(t, "2024-03-04 04:00"), at(t, "2024-03-04 08:00"))
	if got != 120 {
		t.Fatalf("overlap = %d, want 120", got)
	}
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	cfg := testConfig()
	plan := Plan{PlannedMinutes: 480, BreakMinutes: 60}

	totals := computeTotals(cfg, time.Time{}, 30, plan, false)
	if totals.WorkedMinutes != 0 {
		t.Fatalf("worked = %d, want 0 when break exceeds gross", totals.WorkedMinutes)
	}
	if totals.PlanOvertimeMinutes != 0 {
		t.Fatalf("plan overtime = %d, want 0", totals.PlanOvertimeMinutes)
	}
}
