package timesheet

// ResolvePlan decides which configured tier governs the day's planned and
// break minutes.
//
// A non-AUTO override request wins outright when its target is valid;
// otherwise it degrades to automatic resolution with RULE_OVERRIDE_INVALID,
// never failing the day. Automatic precedence is Shift > WeeklyRule >
// WorkRule. A day covered by no tier at all returns ErrNoRuleConfigured.
func ResolvePlan(rules RuleConfig, override *OverrideRule) (Plan, error) {
	if override != nil && override.Request != RequestAuto && override.Request != "" {
		if plan, ok := manualPlan(rules, override); ok {
			plan.Flags = append(plan.Flags, FlagRuleSourceManualOverride)
			return plan, nil
		}
		plan, err := autoPlan(rules)
		if err != nil {
			return Plan{}, err
		}
		plan.Flags = append([]Flag{FlagRuleOverrideInvalid}, plan.Flags...)
		return plan, nil
	}
	return autoPlan(rules)
}

func manualPlan(rules RuleConfig, override *OverrideRule) (Plan, bool) {
	switch override.Request {
	case RequestShift:
		if override.Shift == nil {
			return Plan{}, false
		}
		shiftID := override.Shift.ShiftID
		return Plan{
			PlannedMinutes: override.Shift.PlannedMinutes,
			BreakMinutes:   override.Shift.BreakMinutes,
			Source:         SourceShift,
			ShiftID:        &shiftID,
			ShiftName:      override.Shift.Name,
		}, true
	case RequestWeekly:
		if rules.Weekly == nil {
			return Plan{}, false
		}
		return Plan{
			PlannedMinutes: rules.Weekly.PlannedMinutes,
			BreakMinutes:   rules.Weekly.BreakMinutes,
			Source:         SourceWeekly,
		}, true
	case RequestWorkRule:
		if rules.Work == nil {
			return Plan{}, false
		}
		return Plan{
			PlannedMinutes: rules.Work.PlannedMinutes,
			BreakMinutes:   rules.Work.BreakMinutes,
			Source:         SourceWorkRule,
		}, true
	}
	return Plan{}, false
}

func autoPlan(rules RuleConfig) (Plan, error) {
	if rules.Shift != nil {
		shiftID := rules.Shift.ShiftID
		plan := Plan{
			PlannedMinutes: rules.Shift.PlannedMinutes,
			BreakMinutes:   rules.Shift.BreakMinutes,
			Source:         SourceShift,
			ShiftID:        &shiftID,
			ShiftName:      rules.Shift.Name,
			Flags:          []Flag{FlagWeekdayShiftAssignment},
		}
		if rules.Weekly != nil &&
			(rules.Weekly.PlannedMinutes != rules.Shift.PlannedMinutes ||
				rules.Weekly.BreakMinutes != rules.Shift.BreakMinutes) {
			plan.Flags = append(plan.Flags, FlagShiftWeeklyRuleOverride)
		}
		return plan, nil
	}
	if rules.Weekly != nil {
		return Plan{
			PlannedMinutes: rules.Weekly.PlannedMinutes,
			BreakMinutes:   rules.Weekly.BreakMinutes,
			Source:         SourceWeekly,
		}, nil
	}
	if rules.Work != nil {
		return Plan{
			PlannedMinutes: rules.Work.PlannedMinutes,
			BreakMinutes:   rules.Work.BreakMinutes,
			Source:         SourceWorkRule,
		}, nil
	}
	return Plan{}, ErrNoRuleConfigured
}
