package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyRule defines planned and break minutes for one weekday of a
// department, used when no shift assignment covers that weekday.
type WeeklyRule struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	DepartmentID   uuid.UUID `gorm:"type:char(36);index:idx_weekly_rule,unique;not null" json:"departmentId"`
	Weekday        int       `gorm:"index:idx_weekly_rule,unique;not null" json:"weekday"`
	PlannedMinutes int       `gorm:"not null" json:"plannedMinutes"`
	BreakMinutes   int       `gorm:"not null" json:"breakMinutes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r *WeeklyRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// WorkRule is the last-resort default. A row with DepartmentID set applies to
// that department; a row without one is the organization-wide fallback.
type WorkRule struct {
	ID             uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	DepartmentID   *uuid.UUID `gorm:"type:char(36);index" json:"departmentId,omitempty"`
	PlannedMinutes int        `gorm:"not null" json:"plannedMinutes"`
	BreakMinutes   int        `gorm:"not null" json:"breakMinutes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (r *WorkRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
