package resolve

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/timesheet"
)

// dayInput assembles everything the engine needs for one local day.
func (s *Service) dayInput(employee models.Employee, date time.Time, skip map[uuid.UUID]bool) (timesheet.DayInput, error) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	windowEnd := dayEnd.Add(s.Cfg.CrossMidnightWindow)

	events, err := s.eventsBetween(employee.ID, dayStart, dayEnd)
	if err != nil {
		return timesheet.DayInput{}, err
	}
	nextMorning, err := s.eventsBetween(employee.ID, dayEnd, windowEnd)
	if err != nil {
		return timesheet.DayInput{}, err
	}

	rules, err := s.ruleConfig(employee, date)
	if err != nil {
		return timesheet.DayInput{}, err
	}

	override, err := s.override(employee, date)
	if err != nil {
		return timesheet.DayInput{}, err
	}

	return timesheet.DayInput{
		Date:        date,
		Events:      events,
		NextMorning: nextMorning,
		Skip:        skip,
		Rules:       rules,
		Override:    override,
	}, nil
}

// consumedByPreviousDay reduces yesterday to learn which of today's early
// events it claimed through cross-midnight attribution.
func (s *Service) consumedByPreviousDay(employee models.Employee, date time.Time) (map[uuid.UUID]bool, error) {
	prevStart := date.AddDate(0, 0, -1)
	prevEvents, err := s.eventsBetween(employee.ID, prevStart, date)
	if err != nil {
		return nil, err
	}
	if len(prevEvents) == 0 {
		return nil, nil
	}
	morning, err := s.eventsBetween(employee.ID, date, date.Add(s.Cfg.CrossMidnightWindow))
	if err != nil {
		return nil, err
	}

	red := timesheet.Reduce(prevEvents, morning, nil)
	if len(red.Consumed) == 0 {
		return nil, nil
	}
	skip := map[uuid.UUID]bool{}
	for _, id := range red.Consumed {
		skip[id] = true
	}
	return skip, nil
}

func (s *Service) eventsBetween(employeeID uuid.UUID, from, to time.Time) ([]timesheet.Event, error) {
	var rows []models.AttendanceEvent
	err := s.DB.Where("employee_id = ? AND deleted = false AND timestamp >= ? AND timestamp < ?",
		employeeID, from.UTC(), to.UTC()).
		Order("timestamp asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	events := make([]timesheet.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, timesheet.Event{
			ID:          row.ID,
			Type:        timesheet.EventType(row.Type),
			At:          row.Timestamp,
			Coordinates: row.Coordinates,
			Source:      row.Source,
			Approved:    eventHasFlag(row.Flags, timesheet.FlagSecondCheckinApproved),
		})
	}
	return events, nil
}

func eventHasFlag(csv string, code timesheet.Flag) bool {
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == string(code) {
			return true
		}
	}
	return false
}

func (s *Service) ruleConfig(employee models.Employee, date time.Time) (timesheet.RuleConfig, error) {
	weekday := int(date.Weekday())
	rules := timesheet.RuleConfig{}

	var assignment models.ShiftAssignment
	err := s.DB.Preload("Shift").
		Where("employee_id = ? AND weekday = ? AND effective_from <= ?", employee.ID, weekday, date).
		Order("effective_from desc").First(&assignment).Error
	if err == nil && assignment.Shift != nil {
		rules.Shift = &timesheet.AssignedShift{
			ShiftID:        assignment.Shift.ID,
			Name:           assignment.Shift.Name,
			PlannedMinutes: assignment.Shift.PlannedMinutes(),
			BreakMinutes:   assignment.Shift.BreakMinutes,
		}
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return rules, err
	}

	var weekly models.WeeklyRule
	err = s.DB.Where("department_id = ? AND weekday = ?", employee.DepartmentID, weekday).
		First(&weekly).Error
	if err == nil {
		rules.Weekly = &timesheet.RuleMinutes{
			PlannedMinutes: weekly.PlannedMinutes,
			BreakMinutes:   weekly.BreakMinutes,
		}
	} else if err != gorm.ErrRecordNotFound {
		return rules, err
	}

	var work models.WorkRule
	err = s.DB.Where("department_id = ?", employee.DepartmentID).First(&work).Error
	if err == gorm.ErrRecordNotFound {
		err = s.DB.Where("department_id IS NULL").First(&work).Error
	}
	if err == nil {
		rules.Work = &timesheet.RuleMinutes{
			PlannedMinutes: work.PlannedMinutes,
			BreakMinutes:   work.BreakMinutes,
		}
	} else if err != gorm.ErrRecordNotFound {
		return rules, err
	}

	return rules, nil
}

func (s *Service) override(employee models.Employee, date time.Time) (*timesheet.Override, error) {
	var row models.DayOverride
	err := s.DB.Where("employee_id = ? AND day_date = ?", employee.ID, date.Format("2006-01-02")).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	override := &timesheet.Override{
		Status: timesheet.OverrideStatus(row.Status),
		InAt:   row.InAt,
		OutAt:  row.OutAt,
		Reason: row.Reason,
	}

	request := timesheet.RuleSourceRequest(row.RuleSourceRequest)
	if request != "" && request != timesheet.RequestAuto {
		rule := &timesheet.OverrideRule{Request: request}
		if request == timesheet.RequestShift && row.RuleShiftID != nil {
			var shift models.Shift
			// A shift outside the employee's department is invalid and
			// degrades the request to AUTO inside the engine.
			err := s.DB.Where("id = ? AND department_id = ?", *row.RuleShiftID, employee.DepartmentID).
				First(&shift).Error
			if err == nil {
				rule.Shift = &timesheet.AssignedShift{
					ShiftID:        shift.ID,
					Name:           shift.Name,
					PlannedMinutes: shift.PlannedMinutes(),
					BreakMinutes:   shift.BreakMinutes,
				}
			} else if err != gorm.ErrRecordNotFound {
				return nil, err
			}
		}
		override.Rule = rule
	}

	return override, nil
}
