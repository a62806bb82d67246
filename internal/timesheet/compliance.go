package timesheet

import "time"

// checkCompliance runs the stateless statutory checks for one day. The
// annual overtime cap is stateful and evaluated by the ledger layer.
func checkCompliance(cfg Config, in, out *time.Time, gross int, totals Totals, plan Plan) []Flag {
	flags := []Flag{}

	if cfg.DailyMaxMinutes > 0 && totals.WorkedMinutes > cfg.DailyMaxMinutes {
		flags = append(flags, FlagDailyMaxExceeded)
	}

	if gross > 0 && plan.BreakMinutes < statutoryMinBreak(gross) {
		flags = append(flags, FlagMinBreakNotMet)
	}

	if cfg.NightMaxMinutes > 0 && in != nil && out != nil {
		if nightOverlapMinutes(cfg, *in, *out) > cfg.NightMaxMinutes {
			flags = append(flags, FlagNightWorkExceeded)
		}
	}

	return flags
}

// nightOverlapMinutes measures how much of [in, out] falls inside the
// configured night window, evaluated in the organization timezone. A window
// whose start is later than its end wraps past midnight and is treated as
// two intervals per calendar day.
func nightOverlapMinutes(cfg Config, in, out time.Time) int {
	if !out.After(in) {
		return 0
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	localIn := in.In(loc)
	localOut := out.In(loc)

	total := 0
	day := time.Date(localIn.Year(), localIn.Month(), localIn.Day(), 0, 0, 0, 0, loc)
	for !day.After(localOut) {
		for _, window := range nightIntervals(cfg, day) {
			total += overlapMinutes(localIn, localOut, window[0], window[1])
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

func nightIntervals(cfg Config, dayStart time.Time) [][2]time.Time {
	start := dayStart.Add(time.Duration(cfg.NightStartMin) * time.Minute)
	end := dayStart.Add(time.Duration(cfg.NightEndMin) * time.Minute)
	if cfg.NightStartMin <= cfg.NightEndMin {
		return [][2]time.Time{{start, end}}
	}
	// Wrapping window: tail of this day plus the head before NightEndMin.
	midnight := dayStart.AddDate(0, 0, 1)
	return [][2]time.Time{
		{start, midnight},
		{dayStart, end},
	}
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
