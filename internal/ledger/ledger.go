// Package ledger maintains the per-employee annual legal overtime total.
//
// The authoritative value is always a replay of the year's resolved days;
// the month rows stored here are a cache so a snapshot read does not have to
// re-resolve twelve months. A retroactive override invalidates the cache for
// its year and the resolution layer rewrites every affected month instead of
// patching the counter in place.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puantaj-backend/internal/models"
)

type CapState string

const (
	CapOK       CapState = "ok"
	CapExceeded CapState = "exceeded"
	CapUnknown  CapState = "unknown"
)

// Snapshot is the ledger view served to compliance dashboards.
type Snapshot struct {
	EmployeeID       uuid.UUID `json:"employeeId"`
	Year             int       `json:"year"`
	UsedMinutes      int       `json:"usedMinutes"`
	CapMinutes       int       `json:"capMinutes"`
	RemainingMinutes int       `json:"remainingMinutes"`
	CapState         CapState  `json:"capState"`
	CoveredMonths    int       `json:"coveredMonths"`
	ExpectedMonths   int       `json:"expectedMonths"`
}

type Service struct {
	DB         *gorm.DB
	CapMinutes int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(db *gorm.DB, capMinutes int) *Service {
	return &Service{DB: db, CapMinutes: capMinutes, locks: map[string]*sync.Mutex{}}
}

// keyLock serializes writers per (employee, year). Updates from concurrent
// month resolutions or retroactive recomputes must not interleave.
func (s *Service) keyLock(employeeID uuid.UUID, year int) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", employeeID, year)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// SetMonth upserts the legal overtime minutes of one resolved month.
func (s *Service) SetMonth(employeeID uuid.UUID, year, month, legalOvertimeMinutes int) error {
	lock := s.keyLock(employeeID, year)
	lock.Lock()
	defer lock.Unlock()

	entry := models.OvertimeLedgerEntry{
		EmployeeID:           employeeID,
		Year:                 year,
		Month:                month,
		LegalOvertimeMinutes: legalOvertimeMinutes,
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"legal_overtime_minutes", "updated_at"}),
	}).Create(&entry).Error
}

// Invalidate drops the cached months of a year. The next snapshot reports
// the cap state as unknown until the year is recomputed.
func (s *Service) Invalidate(employeeID uuid.UUID, year int) error {
	lock := s.keyLock(employeeID, year)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.Where("employee_id = ? AND year = ?", employeeID, year).
		Delete(&models.OvertimeLedgerEntry{}).Error
}

// PriorTotal sums the cached legal overtime of the months before
// beforeMonth. The boolean result reports whether every expected month since
// firstMonth is covered; an incomplete cache means the total cannot be
// trusted for cap decisions.
func (s *Service) PriorTotal(employeeID uuid.UUID, year, beforeMonth, firstMonth int) (int, bool, error) {
	if firstMonth < 1 {
		firstMonth = 1
	}
	expected := beforeMonth - firstMonth
	if expected <= 0 {
		return 0, true, nil
	}

	var entries []models.OvertimeLedgerEntry
	if err := s.DB.Where("employee_id = ? AND year = ? AND month >= ? AND month < ?",
		employeeID, year, firstMonth, beforeMonth).Find(&entries).Error; err != nil {
		return 0, false, err
	}

	total := 0
	for _, entry := range entries {
		total += entry.LegalOvertimeMinutes
	}
	return total, len(entries) == expected, nil
}

// monthSpan returns the months the cache must cover for a year. An employee
// hired mid-year owes no earlier months; the current year only owes months
// up to now. The span is inactive for years before hire or after now.
func monthSpan(year int, hiredAt, now time.Time) (firstMonth, lastMonth int, active bool) {
	if now.Year() < year || hiredAt.Year() > year {
		return 0, 0, false
	}
	firstMonth = 1
	if hiredAt.Year() == year {
		firstMonth = int(hiredAt.Month())
	}
	lastMonth = 12
	if now.Year() == year {
		lastMonth = int(now.Month())
	}
	return firstMonth, lastMonth, true
}

// summarize folds cached month entries into the snapshot. An incomplete
// cache degrades to unknown rather than a false all-clear; exceeding is
// reportable even from partial data, since more data only raises the total.
func summarize(employeeID uuid.UUID, year, capMinutes, expectedMonths int, entries []models.OvertimeLedgerEntry) Snapshot {
	snap := Snapshot{
		EmployeeID:     employeeID,
		Year:           year,
		CapMinutes:     capMinutes,
		CapState:       CapUnknown,
		ExpectedMonths: expectedMonths,
	}

	for _, entry := range entries {
		snap.UsedMinutes += entry.LegalOvertimeMinutes
	}
	snap.CoveredMonths = len(entries)
	snap.RemainingMinutes = capMinutes - snap.UsedMinutes
	if snap.RemainingMinutes < 0 {
		snap.RemainingMinutes = 0
	}

	if snap.UsedMinutes > capMinutes {
		snap.CapState = CapExceeded
	} else if snap.CoveredMonths == snap.ExpectedMonths {
		snap.CapState = CapOK
	}
	return snap
}

// Snapshot reads the year's cached total. hiredAt bounds the months the
// cache is expected to cover; now bounds them for the current year.
func (s *Service) Snapshot(employeeID uuid.UUID, year int, hiredAt, now time.Time) (Snapshot, error) {
	firstMonth, lastMonth, active := monthSpan(year, hiredAt, now)
	if !active {
		return Snapshot{
			EmployeeID:       employeeID,
			Year:             year,
			CapMinutes:       s.CapMinutes,
			RemainingMinutes: s.CapMinutes,
			CapState:         CapOK,
		}, nil
	}

	var entries []models.OvertimeLedgerEntry
	if err := s.DB.Where("employee_id = ? AND year = ? AND month >= ? AND month <= ?",
		employeeID, year, firstMonth, lastMonth).Find(&entries).Error; err != nil {
		return Snapshot{EmployeeID: employeeID, Year: year, CapMinutes: s.CapMinutes, CapState: CapUnknown}, err
	}

	return summarize(employeeID, year, s.CapMinutes, lastMonth-firstMonth+1, entries), nil
}
