package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayOverride is an HR correction for one employee day. At most one active
// override exists per (employee, day); upsert replaces it and delete reverts
// the day to the computed record. DayDate is the local calendar day in the
// organization timezone, stored as "2006-01-02".
//
// Status replaces the legacy note-prefix encoding ([MANUAL_STATUS:...])
// observed in older clients; see timesheet.DecodeLegacyNote for the read
// adapter applied at the override boundary.
type DayOverride struct {
	ID                uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID        uuid.UUID  `gorm:"type:char(36);index:idx_override_day,unique;not null" json:"employeeId"`
	DayDate           string     `gorm:"size:10;index:idx_override_day,unique;not null" json:"dayDate"`
	InAt              *time.Time `json:"inAt,omitempty"`
	OutAt             *time.Time `json:"outAt,omitempty"`
	Status            string     `gorm:"size:16;not null;default:NORMAL" json:"status"`
	Reason            string     `gorm:"size:500" json:"reason,omitempty"`
	RuleSourceRequest string     `gorm:"size:16;not null;default:AUTO" json:"ruleSourceRequest"`
	RuleShiftID       *uuid.UUID `gorm:"type:char(36)" json:"ruleShiftId,omitempty"`
	UpdatedBy         uuid.UUID  `gorm:"type:char(36)" json:"updatedBy"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (o *DayOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
