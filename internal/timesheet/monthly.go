package timesheet

// MonthlySummary is a pure fold over one employee month. Re-running it after
// a single day changes moves only that month's totals.
type MonthlySummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	WorkedMinutes         int `json:"workedMinutes"`
	PlanOvertimeMinutes   int `json:"planOvertimeMinutes"`
	LegalExtraWorkMinutes int `json:"legalExtraWorkMinutes"`
	LegalOvertimeMinutes  int `json:"legalOvertimeMinutes"`
	MissingMinutes        int `json:"missingMinutes"`

	IncompleteDays   int `json:"incompleteDays"`
	PlanOvertimeDays int `json:"planOvertimeDays"`
	LegalOvertimeDays int `json:"legalOvertimeDays"`
	LeaveDays        int `json:"leaveDays"`
	HolidayDays      int `json:"holidayDays"`
	AbsentDays       int `json:"absentDays"`
}

// Summarize folds resolved days into monthly totals. It reads nothing but
// the day list.
func Summarize(year, month int, days []Day) MonthlySummary {
	s := MonthlySummary{Year: year, Month: month}
	for _, day := range days {
		s.WorkedMinutes += day.WorkedMinutes
		s.PlanOvertimeMinutes += day.PlanOvertimeMinutes
		s.LegalExtraWorkMinutes += day.LegalExtraWorkMinutes
		s.LegalOvertimeMinutes += day.LegalOvertimeMinutes
		s.MissingMinutes += day.MissingMinutes

		switch day.Status {
		case StatusIncomplete:
			s.IncompleteDays++
		case StatusLeave:
			s.LeaveDays++
		case StatusHoliday:
			s.HolidayDays++
		case StatusAbsent:
			s.AbsentDays++
		}
		if day.PlanOvertimeMinutes > 0 {
			s.PlanOvertimeDays++
		}
		if day.LegalOvertimeMinutes > 0 {
			s.LegalOvertimeDays++
		}
	}
	return s
}
