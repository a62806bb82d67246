package timesheet

import "time"

// ExemptionPolicy decides how much of a day's plan overtime survives legal
// exemptions (rest-compensated time and similar organization rules). The
// returned value is clamped to [0, planOvertimeMinutes].
type ExemptionPolicy func(date time.Time, planOvertimeMinutes int) int

// DefaultExemptionPolicy exempts nothing: all plan overtime is legal extra
// work unless the organization configures otherwise.
func DefaultExemptionPolicy(_ time.Time, planOvertimeMinutes int) int {
	return planOvertimeMinutes
}

// Config carries the organization and statutory parameters of day
// resolution. Zero values are not usable; build one with sensible limits and
// a non-nil Location.
type Config struct {
	// Location fixes day boundaries to the organization timezone.
	Location *time.Location

	// CrossMidnightWindow is how far into the next calendar day an OUT may
	// fall and still belong to the prior day's shift.
	CrossMidnightWindow time.Duration

	// DailyMaxMinutes is the statutory daily working ceiling.
	DailyMaxMinutes int

	// NightStartMin/NightEndMin delimit the night window as minutes after
	// local midnight; a start greater than the end wraps past midnight.
	NightStartMin int
	NightEndMin   int

	// NightMaxMinutes is the legal limit on minutes inside the night window.
	NightMaxMinutes int

	// DailyLegalOvertimeMax clips how much legal extra work counts against
	// the annual cap on a single day.
	DailyLegalOvertimeMax int

	// UnderworkedThreshold is the fraction of the planned minutes below
	// which a completed day is flagged UNDERWORKED. 1.0 flags any shortfall.
	UnderworkedThreshold float64

	Exemption ExemptionPolicy
}

func (c Config) exemption() ExemptionPolicy {
	if c.Exemption == nil {
		return DefaultExemptionPolicy
	}
	return c.Exemption
}

// statutoryMinBreak returns the minimum legal break for a gross shift
// length: 15 minutes up to 4 hours, 30 minutes up to 7.5 hours, 60 minutes
// beyond that.
func statutoryMinBreak(grossMinutes int) int {
	switch {
	case grossMinutes <= 0:
		return 0
	case grossMinutes <= 240:
		return 15
	case grossMinutes <= 450:
		return 30
	default:
		return 60
	}
}
