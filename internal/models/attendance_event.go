package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceEvent is a raw check-in/check-out record. Rows are never hard
// deleted; operators soft-delete so the audit trail survives. Everything
// except Deleted, Note and Flags is immutable after creation.
type AttendanceEvent struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID     uuid.UUID `gorm:"type:char(36);index:idx_event_identity,unique;index;not null" json:"employeeId"`
	Type           string    `gorm:"size:8;index:idx_event_identity,unique;not null" json:"type"`
	Timestamp      time.Time `gorm:"index:idx_event_identity,unique;index;not null" json:"timestamp"`
	Source         string    `gorm:"size:16;index:idx_event_identity,unique;not null" json:"source"`
	LocationStatus string    `gorm:"size:16;not null;default:none" json:"locationStatus"`
	Coordinates    string    `gorm:"size:64" json:"coordinates,omitempty"`
	Note           string    `gorm:"size:500" json:"note,omitempty"`
	Deleted        bool      `gorm:"index;not null;default:false" json:"deleted"`
	Flags          string    `gorm:"size:255" json:"flags,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (e *AttendanceEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
