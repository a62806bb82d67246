// Package resolve loads events, rule configuration and overrides from the
// store and runs the timesheet engine over them. Days inside a month are
// always resolved in ascending date order: cross-midnight attribution hands
// consumed events to the next day, and the annual overtime accumulation is
// not commutative.
package resolve

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puantaj-backend/internal/config"
	"puantaj-backend/internal/ledger"
	"puantaj-backend/internal/models"
	"puantaj-backend/internal/timesheet"
)

type Service struct {
	DB      *gorm.DB
	Cfg     timesheet.Config
	Ledger  *ledger.Service
	Workers int
}

func NewService(db *gorm.DB, appCfg config.Config, led *ledger.Service) (*Service, error) {
	engineCfg, err := EngineConfig(appCfg)
	if err != nil {
		return nil, err
	}
	workers := appCfg.ResolveWorkers
	if workers < 1 {
		workers = 1
	}
	return &Service{DB: db, Cfg: engineCfg, Ledger: led, Workers: workers}, nil
}

// EngineConfig translates the env configuration into engine parameters.
func EngineConfig(appCfg config.Config) (timesheet.Config, error) {
	loc, err := time.LoadLocation(appCfg.OrgTimezone)
	if err != nil {
		return timesheet.Config{}, fmt.Errorf("org timezone: %w", err)
	}
	nightStart, err := parseClockMinutes(appCfg.NightWindowStart)
	if err != nil {
		return timesheet.Config{}, fmt.Errorf("night window start: %w", err)
	}
	nightEnd, err := parseClockMinutes(appCfg.NightWindowEnd)
	if err != nil {
		return timesheet.Config{}, fmt.Errorf("night window end: %w", err)
	}
	return timesheet.Config{
		Location:              loc,
		CrossMidnightWindow:   time.Duration(appCfg.CrossMidnightWindowMin) * time.Minute,
		DailyMaxMinutes:       appCfg.DailyMaxMinutes,
		NightStartMin:         nightStart,
		NightEndMin:           nightEnd,
		NightMaxMinutes:       appCfg.NightMaxMinutes,
		DailyLegalOvertimeMax: appCfg.DailyLegalOvertimeMax,
		UnderworkedThreshold:  appCfg.UnderworkedThreshold,
	}, nil
}

func parseClockMinutes(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// Day resolves a single employee day. The previous day is reduced first so
// an early-morning OUT already claimed by it is not seen twice.
func (s *Service) Day(employee models.Employee, date time.Time) (timesheet.Day, error) {
	date = s.localMidnight(date)

	skip, err := s.consumedByPreviousDay(employee, date)
	if err != nil {
		return timesheet.Day{}, err
	}

	input, err := s.dayInput(employee, date, skip)
	if err != nil {
		return timesheet.Day{}, err
	}
	return timesheet.ResolveDay(s.Cfg, input)
}

// MonthResult is one employee month with its resolved days and fold.
type MonthResult struct {
	EmployeeID uuid.UUID                 `json:"employeeId"`
	Days       []timesheet.Day           `json:"days"`
	Summary    timesheet.MonthlySummary  `json:"summary"`
	Ledger     *ledger.Snapshot          `json:"ledger,omitempty"`
}

// Month resolves every day of an employee month in ascending order, folds
// the summary, refreshes the month's ledger entry and evaluates the annual
// cap. A day with no rule configuration fails the month with day context.
func (s *Service) Month(employee models.Employee, year int, month time.Month) (MonthResult, error) {
	result := MonthResult{EmployeeID: employee.ID}

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.location())
	next := first.AddDate(0, 1, 0)

	priorTotal, priorKnown, err := s.priorMonthsTotal(employee, year, int(month))
	if err != nil {
		return result, err
	}

	skip, err := s.consumedByPreviousDay(employee, first)
	if err != nil {
		return result, err
	}

	running := priorTotal
	monthLegal := 0
	for date := first; date.Before(next); date = date.AddDate(0, 0, 1) {
		input, err := s.dayInput(employee, date, skip)
		if err != nil {
			return result, err
		}
		day, err := timesheet.ResolveDay(s.Cfg, input)
		if err != nil {
			return result, fmt.Errorf("%s: %w", date.Format("2006-01-02"), err)
		}

		monthLegal += day.LegalOvertimeMinutes
		if priorKnown {
			running += day.LegalOvertimeMinutes
			if running > s.Ledger.CapMinutes && day.LegalOvertimeMinutes > 0 {
				day.Flags = append(day.Flags, timesheet.FlagAnnualOvertimeCapExceeded)
			}
		}

		result.Days = append(result.Days, day)

		skip = map[uuid.UUID]bool{}
		for _, id := range day.ConsumedEventIDs {
			skip[id] = true
		}
	}

	result.Summary = timesheet.Summarize(year, int(month), result.Days)

	if err := s.Ledger.SetMonth(employee.ID, year, int(month), monthLegal); err != nil {
		return result, err
	}
	snap, err := s.Ledger.Snapshot(employee.ID, year, employee.HiredAt, time.Now())
	if err == nil {
		result.Ledger = &snap
	}

	return result, nil
}

// MonthAll fans resolution out over a bounded worker pool, one task per
// employee month. Employees are independent; a failing employee does not
// abort the batch.
func (s *Service) MonthAll(year int, month time.Month) ([]MonthResult, map[uuid.UUID]error, error) {
	var employees []models.Employee
	if err := s.DB.Order("created_at asc").Find(&employees).Error; err != nil {
		return nil, nil, err
	}

	pool := newWorkerPool(s.Workers)
	for _, employee := range employees {
		employee := employee
		pool.submit(employee.ID, func() (MonthResult, error) {
			return s.Month(employee, year, month)
		})
	}
	results, errs := pool.wait()
	return results, errs, nil
}

// RecomputeYear rebuilds the ledger cache for a year by re-resolving every
// month from the first relevant one. Used after retroactive override edits;
// the cache is never incrementally patched across months.
func (s *Service) RecomputeYear(employee models.Employee, year int) error {
	if err := s.Ledger.Invalidate(employee.ID, year); err != nil {
		return err
	}

	firstMonth := time.January
	if employee.HiredAt.Year() == year {
		firstMonth = employee.HiredAt.Month()
	}
	lastMonth := time.December
	now := time.Now().In(s.location())
	if now.Year() == year {
		lastMonth = now.Month()
	}

	for month := firstMonth; month <= lastMonth; month++ {
		if _, err := s.Month(employee, year, month); err != nil {
			return fmt.Errorf("month %d: %w", month, err)
		}
	}
	return nil
}

func (s *Service) location() *time.Location {
	if s.Cfg.Location == nil {
		return time.UTC
	}
	return s.Cfg.Location
}

func (s *Service) localMidnight(t time.Time) time.Time {
	local := t.In(s.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location())
}

func (s *Service) priorMonthsTotal(employee models.Employee, year, month int) (int, bool, error) {
	firstMonth := 1
	if employee.HiredAt.Year() == year {
		firstMonth = int(employee.HiredAt.Month())
	}
	return s.Ledger.PriorTotal(employee.ID, year, month, firstMonth)
}
