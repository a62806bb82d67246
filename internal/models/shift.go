package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift windows are stored as local wall-clock "HH:MM" strings in the
// organization timezone. An end before the start means the shift crosses
// midnight.
type Shift struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	DepartmentID uuid.UUID `gorm:"type:char(36);index;not null" json:"departmentId"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	StartLocal   string    `gorm:"size:5;not null" json:"startLocal"`
	EndLocal     string    `gorm:"size:5;not null" json:"endLocal"`
	BreakMinutes int       `gorm:"not null" json:"breakMinutes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PlannedMinutes derives the working window length from the local times,
// break excluded. Returns 0 when either time string is malformed.
func (s *Shift) PlannedMinutes() int {
	start, okStart := parseLocalMinutes(s.StartLocal)
	end, okEnd := parseLocalMinutes(s.EndLocal)
	if !okStart || !okEnd {
		return 0
	}
	gross := end - start
	if gross <= 0 {
		gross += 24 * 60
	}
	planned := gross - s.BreakMinutes
	if planned < 0 {
		return 0
	}
	return planned
}

func parseLocalMinutes(value string) (int, bool) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

// ShiftAssignment binds an employee to a shift for one weekday. Assignments
// are effective-dated; for a given day the latest EffectiveFrom on or before
// that day wins.
type ShiftAssignment struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID    uuid.UUID `gorm:"type:char(36);index;not null" json:"employeeId"`
	ShiftID       uuid.UUID `gorm:"type:char(36);index;not null" json:"shiftId"`
	Weekday       int       `gorm:"index;not null" json:"weekday"`
	EffectiveFrom time.Time `gorm:"index;not null" json:"effectiveFrom"`
	Shift         *Shift    `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *ShiftAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
