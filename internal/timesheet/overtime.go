package timesheet

import "time"

// Totals are the minute figures computed for one day.
type Totals struct {
	WorkedMinutes         int
	PlanOvertimeMinutes   int
	LegalExtraWorkMinutes int
	LegalOvertimeMinutes  int
	MissingMinutes        int
	Flags                 []Flag
}

// computeTotals turns a gross worked span and the applied plan into the
// overtime figures.
//
// Worked minutes deduct the break actually applied by the plan, not the one
// claimed by the employee. Plan overtime is the excess over the planned
// minutes; legal extra work is what survives the exemption policy; legal
// overtime is the part that counts against the annual cap, clipped by the
// daily legal ceiling.
func computeTotals(cfg Config, date time.Time, grossMinutes int, plan Plan, incomplete bool) Totals {
	t := Totals{}

	worked := grossMinutes - plan.BreakMinutes
	if worked < 0 {
		worked = 0
	}
	t.WorkedMinutes = worked

	if worked > plan.PlannedMinutes {
		t.PlanOvertimeMinutes = worked - plan.PlannedMinutes
	}

	if t.PlanOvertimeMinutes > 0 {
		extra := cfg.exemption()(date, t.PlanOvertimeMinutes)
		if extra < 0 {
			extra = 0
		}
		if extra > t.PlanOvertimeMinutes {
			extra = t.PlanOvertimeMinutes
		}
		t.LegalExtraWorkMinutes = extra

		legal := extra
		if cfg.DailyLegalOvertimeMax > 0 && legal > cfg.DailyLegalOvertimeMax {
			legal = cfg.DailyLegalOvertimeMax
		}
		t.LegalOvertimeMinutes = legal
	}

	if incomplete {
		if plan.PlannedMinutes > worked {
			t.MissingMinutes = plan.PlannedMinutes - worked
		}
		return t
	}

	threshold := cfg.UnderworkedThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 1.0
	}
	if plan.PlannedMinutes > 0 && float64(worked) < float64(plan.PlannedMinutes)*threshold {
		t.Flags = append(t.Flags, FlagUnderworked)
	}

	return t
}
