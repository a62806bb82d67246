// Package timesheet resolves raw attendance events, rule configuration and
// HR overrides into per-day payroll records. Everything in this package is
// pure computation over already-fetched inputs: no HTTP, no database, no
// clock reads. Callers inject configuration and data; the same inputs always
// produce the same resolved day.
package timesheet

// Flag marks a condition detected while resolving a day. Flags are advisory;
// they never abort resolution.
type Flag string

const (
	// Event reduction.
	FlagDuplicateEvent        Flag = "DUPLICATE_EVENT"
	FlagCrossMidnightCheckout Flag = "CROSS_MIDNIGHT_CHECKOUT"
	FlagOpenShiftActive       Flag = "OPEN_SHIFT_ACTIVE"
	FlagSecondCheckinApproved Flag = "SECOND_CHECKIN_APPROVED"
	FlagMissingIn             Flag = "MISSING_IN"
	FlagMissingOut            Flag = "MISSING_OUT"

	// Rule resolution.
	FlagRuleOverrideInvalid      Flag = "RULE_OVERRIDE_INVALID"
	FlagRuleSourceManualOverride Flag = "RULE_SOURCE_MANUAL_OVERRIDE"
	FlagWeekdayShiftAssignment   Flag = "WEEKDAY_SHIFT_ASSIGNMENT"
	FlagShiftWeeklyRuleOverride  Flag = "SHIFT_WEEKLY_RULE_OVERRIDE"

	// Overtime and statutory compliance.
	FlagUnderworked               Flag = "UNDERWORKED"
	FlagDailyMaxExceeded          Flag = "DAILY_MAX_EXCEEDED"
	FlagMinBreakNotMet            Flag = "MIN_BREAK_NOT_MET"
	FlagNightWorkExceeded         Flag = "NIGHT_WORK_EXCEEDED"
	FlagAnnualOvertimeCapExceeded Flag = "ANNUAL_OVERTIME_CAP_EXCEEDED"
)

type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityViolation Severity = "violation"
)

// FlagDef is one entry of the declarative flag registry. Display and risk
// scoring consume the registry instead of hardcoded allowlists, so a new
// compliance rule only needs a new row here.
type FlagDef struct {
	Code        Flag     `json:"code"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	AppliesTo   string   `json:"appliesTo"`
}

var Registry = []FlagDef{
	{FlagDuplicateEvent, "extra check-in before a matching check-out; first one kept", SeverityInfo, "event"},
	{FlagCrossMidnightCheckout, "check-out after midnight attributed to the prior day's shift", SeverityInfo, "day"},
	{FlagOpenShiftActive, "second check-in not yet matched or not approved; excluded from totals", SeverityWarning, "day"},
	{FlagSecondCheckinApproved, "approved second shift counted into the day's totals", SeverityInfo, "day"},
	{FlagMissingIn, "no check-in recorded for the day", SeverityWarning, "day"},
	{FlagMissingOut, "no check-out recorded for the day", SeverityWarning, "day"},
	{FlagRuleOverrideInvalid, "manual rule override referenced an invalid source; automatic resolution used", SeverityWarning, "day"},
	{FlagRuleSourceManualOverride, "planned minutes taken from a manual rule override", SeverityInfo, "day"},
	{FlagWeekdayShiftAssignment, "planned minutes taken from the weekday shift assignment", SeverityInfo, "day"},
	{FlagShiftWeeklyRuleOverride, "shift assignment took precedence over a conflicting weekly rule", SeverityInfo, "day"},
	{FlagUnderworked, "worked minutes fell short of the planned minutes", SeverityWarning, "day"},
	{FlagDailyMaxExceeded, "worked minutes exceed the statutory daily ceiling", SeverityViolation, "day"},
	{FlagMinBreakNotMet, "applied break is below the statutory minimum for the shift length", SeverityViolation, "day"},
	{FlagNightWorkExceeded, "minutes inside the night window exceed the legal limit", SeverityViolation, "day"},
	{FlagAnnualOvertimeCapExceeded, "annual legal overtime cap exceeded for the year", SeverityViolation, "year"},
}

// Lookup returns the registry entry for a flag code.
func Lookup(code Flag) (FlagDef, bool) {
	for _, def := range Registry {
		if def.Code == code {
			return def, true
		}
	}
	return FlagDef{}, false
}

// IsViolation reports whether a flag is registered with violation severity.
func IsViolation(code Flag) bool {
	def, ok := Lookup(code)
	return ok && def.Severity == SeverityViolation
}
