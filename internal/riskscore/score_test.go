package riskscore

import (
	"testing"

	"puantaj-backend/internal/timesheet"
)

func TestScoreWeightsAndBands(t *testing.T) {
	cfg := DefaultWeights()

	tests := []struct {
		name       string
		counts     map[timesheet.Flag]int
		wantScore  int
		wantStatus string
	}{
		{
			name:       "clean week",
			counts:     map[timesheet.Flag]int{},
			wantScore:  0,
			wantStatus: StatusNormal,
		},
		{
			name:       "single break violation",
			counts:     map[timesheet.Flag]int{timesheet.FlagMinBreakNotMet: 1},
			wantScore:  10,
			wantStatus: StatusNormal,
		},
		{
			name: "watch band",
			counts: map[timesheet.Flag]int{
				timesheet.FlagDailyMaxExceeded: 1,
				timesheet.FlagMinBreakNotMet:   2,
			},
			wantScore:  45,
			wantStatus: StatusWatch,
		},
		{
			name: "critical band",
			counts: map[timesheet.Flag]int{
				timesheet.FlagDailyMaxExceeded:  2,
				timesheet.FlagNightWorkExceeded: 1,
				timesheet.FlagMissingOut:        2,
			},
			wantScore:  80,
			wantStatus: StatusCritical,
		},
		{
			name: "factor impact is capped",
			counts: map[timesheet.Flag]int{
				timesheet.FlagMinBreakNotMet: 10,
			},
			wantScore:  30,
			wantStatus: StatusNormal,
		},
		{
			name: "total clamps at 100",
			counts: map[timesheet.Flag]int{
				timesheet.FlagDailyMaxExceeded:          7,
				timesheet.FlagNightWorkExceeded:         7,
				timesheet.FlagAnnualOvertimeCapExceeded: 1,
			},
			wantScore:  100,
			wantStatus: StatusCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, status, factors := cfg.Score(tt.counts)
			if score != tt.wantScore {
				t.Fatalf("score = %d, want %d", score, tt.wantScore)
			}
			if status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", status, tt.wantStatus)
			}
			if len(factors) != len(cfg.Factors) {
				t.Fatalf("factors = %d rows, want full table of %d", len(factors), len(cfg.Factors))
			}
		})
	}
}

func TestCountFlagsIgnoresUnweightedCodes(t *testing.T) {
	cfg := DefaultWeights()
	days := []timesheet.Day{
		{Flags: []timesheet.Flag{timesheet.FlagDailyMaxExceeded, timesheet.FlagWeekdayShiftAssignment}},
		{Flags: []timesheet.Flag{timesheet.FlagDailyMaxExceeded, timesheet.FlagUnderworked}},
	}

	counts := CountFlags(days, cfg)

	if counts[timesheet.FlagDailyMaxExceeded] != 2 {
		t.Fatalf("daily max count = %d, want 2", counts[timesheet.FlagDailyMaxExceeded])
	}
	if len(counts) != 1 {
		t.Fatalf("counts = %v, want only weighted codes", counts)
	}
}
