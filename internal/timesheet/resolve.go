package timesheet

import "time"

const dayFormat = "2006-01-02"

// ResolveDay turns one day's events, rule configuration and optional HR
// override into the final day record.
//
// Resolution order: the governing rule is resolved first (a day with no rule
// at all is a hard configuration error), then the override's status is
// applied. A non-NORMAL status zeroes all time figures regardless of raw
// events while keeping the resolved rule fields for reporting. A NORMAL
// override's times replace the reduced pair before overtime runs.
func ResolveDay(cfg Config, input DayInput) (Day, error) {
	plan, err := ResolvePlan(input.Rules, overrideRule(input.Override))
	if err != nil {
		return Day{}, err
	}

	day := Day{
		Date:                  input.Date.Format(dayFormat),
		AppliedPlannedMinutes: plan.PlannedMinutes,
		AppliedBreakMinutes:   plan.BreakMinutes,
		RuleSource:            plan.Source,
		ShiftID:               plan.ShiftID,
		ShiftName:             plan.ShiftName,
	}

	if input.Override != nil && input.Override.Status != OverrideNormal && input.Override.Status != "" {
		day.Status, day.LeaveType = statusDay(input.Override.Status)
		day.Flags = append([]Flag{}, plan.Flags...)
		return day, nil
	}

	red := Reduce(input.Events, input.NextMorning, input.Skip)
	day.ConsumedEventIDs = red.Consumed

	var in, out *time.Time
	gross := 0
	if red.In != nil {
		at := red.In.At
		in = &at
		day.InCoordinates = red.In.Coordinates
	}
	if red.Out != nil {
		at := red.Out.At
		out = &at
		day.OutCoordinates = red.Out.Coordinates
	}

	if input.Override != nil {
		if input.Override.InAt != nil {
			in = input.Override.InAt
			day.InCoordinates = ""
		}
		if input.Override.OutAt != nil {
			out = input.Override.OutAt
			day.OutCoordinates = ""
		}
		if in != nil && out != nil && out.Before(*in) {
			return Day{}, ErrInvalidOverride
		}
	}

	overridden := input.Override != nil && (input.Override.InAt != nil || input.Override.OutAt != nil)
	if in != nil && out != nil {
		if overridden {
			gross = int(out.Sub(*in).Minutes())
			if gross < 0 {
				gross = 0
			}
		} else {
			gross = red.grossMinutes()
		}
	}

	day.InAt = in
	day.OutAt = out

	incomplete := in == nil || out == nil
	if incomplete {
		day.Status = StatusIncomplete
	} else {
		day.Status = StatusOK
	}

	totals := computeTotals(cfg, input.Date, gross, plan, incomplete)
	day.WorkedMinutes = totals.WorkedMinutes
	day.PlanOvertimeMinutes = totals.PlanOvertimeMinutes
	day.LegalExtraWorkMinutes = totals.LegalExtraWorkMinutes
	day.LegalOvertimeMinutes = totals.LegalOvertimeMinutes
	day.MissingMinutes = totals.MissingMinutes

	flags := []Flag{}
	if overridden {
		// The reduced pair no longer describes the day; keep only the
		// reduction flags that still do.
		for _, f := range red.Flags {
			if f == FlagMissingIn && in != nil {
				continue
			}
			if f == FlagMissingOut && out != nil {
				continue
			}
			flags = append(flags, f)
		}
	} else {
		flags = append(flags, red.Flags...)
	}
	flags = append(flags, plan.Flags...)
	flags = append(flags, totals.Flags...)
	flags = append(flags, checkCompliance(cfg, in, out, gross, totals, plan)...)
	day.Flags = dedupeFlags(flags)

	return day, nil
}

func overrideRule(o *Override) *OverrideRule {
	if o == nil {
		return nil
	}
	return o.Rule
}

func dedupeFlags(flags []Flag) []Flag {
	seen := map[Flag]bool{}
	out := make([]Flag, 0, len(flags))
	for _, f := range flags {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
