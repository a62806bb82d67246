package timesheet

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolvePlanPrecedence(t *testing.T) {
	shift := &AssignedShift{ShiftID: uuid.New(), Name: "Day A", PlannedMinutes: 480, BreakMinutes: 60}
	weekly := &RuleMinutes{PlannedMinutes: 420, BreakMinutes: 45}
	work := &RuleMinutes{PlannedMinutes: 450, BreakMinutes: 60}

	tests := []struct {
		name        string
		rules       RuleConfig
		wantSource  RuleSource
		wantPlanned int
		wantFlags   []Flag
	}{
		{
			name:        "shift wins over conflicting weekly rule",
			rules:       RuleConfig{Shift: shift, Weekly: weekly, Work: work},
			wantSource:  SourceShift,
			wantPlanned: 480,
			wantFlags:   []Flag{FlagWeekdayShiftAssignment, FlagShiftWeeklyRuleOverride},
		},
		{
			name:        "shift without weekly conflict",
			rules:       RuleConfig{Shift: shift, Weekly: &RuleMinutes{PlannedMinutes: 480, BreakMinutes: 60}},
			wantSource:  SourceShift,
			wantPlanned: 480,
			wantFlags:   []Flag{FlagWeekdayShiftAssignment},
		},
		{
			name:        "weekly fallback",
			rules:       RuleConfig{Weekly: weekly, Work: work},
			wantSource:  SourceWeekly,
			wantPlanned: 420,
			wantFlags:   []Flag{},
		},
		{
			name:        "work rule last resort",
			rules:       RuleConfig{Work: work},
			wantSource:  SourceWorkRule,
			wantPlanned: 450,
			wantFlags:   []Flag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ResolvePlan(tt.rules, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if plan.Source != tt.wantSource {
				t.Fatalf("source = %s, want %s", plan.Source, tt.wantSource)
			}
			if plan.PlannedMinutes != tt.wantPlanned {
				t.Fatalf("planned = %d, want %d", plan.PlannedMinutes, tt.wantPlanned)
			}
			if len(plan.Flags) != len(tt.wantFlags) {
				t.Fatalf("flags = %v, want %v", plan.Flags, tt.wantFlags)
			}
			for i, f := range tt.wantFlags {
				if plan.Flags[i] != f {
					t.Fatalf("flags = %v, want %v", plan.Flags, tt.wantFlags)
				}
			}
		})
	}
}

func TestResolvePlanNoRuleConfigured(t *testing.T) {
	if _, err := ResolvePlan(RuleConfig{}, nil); err != ErrNoRuleConfigured {
		t.Fatalf("err = %v, want ErrNoRuleConfigured", err)
	}
}

func TestResolvePlanManualOverride(t *testing.T) {
	rules := RuleConfig{
		Shift:  &AssignedShift{ShiftID: uuid.New(), Name: "Day A", PlannedMinutes: 480, BreakMinutes: 60},
		Weekly: &RuleMinutes{PlannedMinutes: 420, BreakMinutes: 45},
		Work:   &RuleMinutes{PlannedMinutes: 450, BreakMinutes: 60},
	}
	overrideShift := &AssignedShift{ShiftID: uuid.New(), Name: "Night B", PlannedMinutes: 420, BreakMinutes: 30}

	t.Run("valid shift override", func(t *testing.T) {
		plan, err := ResolvePlan(rules, &OverrideRule{Request: RequestShift, Shift: overrideShift})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Source != SourceShift || plan.PlannedMinutes != 420 || plan.ShiftName != "Night B" {
			t.Fatalf("override shift not applied: %+v", plan)
		}
		if !hasFlag(plan.Flags, FlagRuleSourceManualOverride) {
			t.Fatalf("missing RULE_SOURCE_MANUAL_OVERRIDE, flags %v", plan.Flags)
		}
	})

	t.Run("invalid shift degrades to auto", func(t *testing.T) {
		plan, err := ResolvePlan(rules, &OverrideRule{Request: RequestShift, Shift: nil})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Source != SourceShift || plan.ShiftName != "Day A" {
			t.Fatalf("expected automatic shift resolution, got %+v", plan)
		}
		if plan.Flags[0] != FlagRuleOverrideInvalid {
			t.Fatalf("RULE_OVERRIDE_INVALID must lead, flags %v", plan.Flags)
		}
	})

	t.Run("weekly request", func(t *testing.T) {
		plan, err := ResolvePlan(rules, &OverrideRule{Request: RequestWeekly})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Source != SourceWeekly || plan.PlannedMinutes != 420 {
			t.Fatalf("weekly request not honored: %+v", plan)
		}
	})

	t.Run("work rule request without config degrades", func(t *testing.T) {
		plan, err := ResolvePlan(RuleConfig{Shift: rules.Shift}, &OverrideRule{Request: RequestWorkRule})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasFlag(plan.Flags, FlagRuleOverrideInvalid) {
			t.Fatalf("missing RULE_OVERRIDE_INVALID, flags %v", plan.Flags)
		}
		if plan.Source != SourceShift {
			t.Fatalf("expected auto fallback to shift, got %s", plan.Source)
		}
	})
}
