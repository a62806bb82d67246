package timesheet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// Event is one raw attendance record, already filtered to non-deleted rows.
// At is a UTC instant; day attribution happens against Config.Location.
type Event struct {
	ID          uuid.UUID
	Type        EventType
	At          time.Time
	Coordinates string
	Source      string
	Approved    bool
}

type DayStatus string

const (
	StatusOK         DayStatus = "OK"
	StatusIncomplete DayStatus = "INCOMPLETE"
	StatusLeave      DayStatus = "LEAVE"
	StatusHoliday    DayStatus = "HOLIDAY"
	StatusAbsent     DayStatus = "ABSENT"
)

// OverrideStatus is the explicit day status carried by an HR override.
type OverrideStatus string

const (
	OverrideNormal  OverrideStatus = "NORMAL"
	OverrideLeave   OverrideStatus = "LEAVE"
	OverrideHoliday OverrideStatus = "HOLIDAY"
	OverrideAbsent  OverrideStatus = "ABSENT"
)

// RuleSourceRequest is what an override asks for; AUTO is a directive to
// re-derive one of the concrete tiers, never a terminal value.
type RuleSourceRequest string

const (
	RequestAuto     RuleSourceRequest = "AUTO"
	RequestShift    RuleSourceRequest = "SHIFT"
	RequestWeekly   RuleSourceRequest = "WEEKLY"
	RequestWorkRule RuleSourceRequest = "WORK_RULE"
)

// RuleSource is the tier that actually supplied a resolved day's plan.
type RuleSource string

const (
	SourceShift    RuleSource = "SHIFT"
	SourceWeekly   RuleSource = "WEEKLY"
	SourceWorkRule RuleSource = "WORK_RULE"
)

var (
	// ErrNoRuleConfigured means neither a shift, a weekly rule nor a work
	// rule covers the day. This is a configuration error, not a warning.
	ErrNoRuleConfigured = errors.New("no rule configured for day")

	// ErrInvalidOverride marks an override that would produce a negative
	// duration. Rejected at the boundary; the engine double-checks.
	ErrInvalidOverride = errors.New("override out time before in time")
)

// AssignedShift carries the minutes of a shift applicable to the day.
type AssignedShift struct {
	ShiftID        uuid.UUID
	Name           string
	PlannedMinutes int
	BreakMinutes   int
}

// RuleMinutes is a weekly-rule or work-rule tier.
type RuleMinutes struct {
	PlannedMinutes int
	BreakMinutes   int
}

// RuleConfig is the configuration visible for one employee day.
type RuleConfig struct {
	Shift  *AssignedShift
	Weekly *RuleMinutes
	Work   *RuleMinutes
}

// OverrideRule is the rule-source part of an HR override. Shift is the
// validated override shift: nil when the requested shift does not belong to
// the employee's department, which degrades the request to AUTO.
type OverrideRule struct {
	Request RuleSourceRequest
	Shift   *AssignedShift
}

// Override is a decoded HR day override.
type Override struct {
	Status OverrideStatus
	InAt   *time.Time
	OutAt  *time.Time
	Reason string
	Rule   *OverrideRule
}

// Plan is the output of rule resolution.
type Plan struct {
	PlannedMinutes int
	BreakMinutes   int
	Source         RuleSource
	ShiftID        *uuid.UUID
	ShiftName      string
	Flags          []Flag
}

// DayInput bundles everything needed to resolve one employee day.
type DayInput struct {
	// Date is local midnight of the day in Config.Location.
	Date time.Time
	// Events are the day's non-deleted events, ascending by time.
	Events []Event
	// NextMorning holds the following day's events inside the configured
	// cross-midnight window, ascending by time.
	NextMorning []Event
	// Skip lists event IDs already attributed to the previous day.
	Skip map[uuid.UUID]bool
	Rules    RuleConfig
	Override *Override
}

// Day is a fully resolved employee day. It is recomputed from inputs, never
// stored as source of truth.
type Day struct {
	Date                  string     `json:"date"`
	Status                DayStatus  `json:"status"`
	InAt                  *time.Time `json:"inAt,omitempty"`
	OutAt                 *time.Time `json:"outAt,omitempty"`
	InCoordinates         string     `json:"inCoordinates,omitempty"`
	OutCoordinates        string     `json:"outCoordinates,omitempty"`
	WorkedMinutes         int        `json:"workedMinutes"`
	PlanOvertimeMinutes   int        `json:"planOvertimeMinutes"`
	LegalExtraWorkMinutes int        `json:"legalExtraWorkMinutes"`
	LegalOvertimeMinutes  int        `json:"legalOvertimeMinutes"`
	MissingMinutes        int        `json:"missingMinutes"`
	AppliedPlannedMinutes int        `json:"appliedPlannedMinutes"`
	AppliedBreakMinutes   int        `json:"appliedBreakMinutes"`
	RuleSource            RuleSource `json:"ruleSource"`
	ShiftID               *uuid.UUID `json:"shiftId,omitempty"`
	ShiftName             string     `json:"shiftName,omitempty"`
	LeaveType             string     `json:"leaveType,omitempty"`
	Flags                 []Flag     `json:"flags"`

	// ConsumedEventIDs lists next-morning events this day claimed through
	// cross-midnight attribution; the following day must skip them.
	ConsumedEventIDs []uuid.UUID `json:"-"`
}

// HasFlag reports whether the day carries the given flag.
func (d Day) HasFlag(code Flag) bool {
	for _, f := range d.Flags {
		if f == code {
			return true
		}
	}
	return false
}
