package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OvertimeLedgerEntry caches the legal overtime minutes of one resolved
// employee month. The annual ledger is always derivable by replaying the
// year's resolved days; these rows only exist so reads do not re-resolve
// twelve months. A missing month means the year's cap state is unknown,
// never that it is fine.
type OvertimeLedgerEntry struct {
	ID                   uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID           uuid.UUID `gorm:"type:char(36);index:idx_ledger_month,unique;not null" json:"employeeId"`
	Year                 int       `gorm:"index:idx_ledger_month,unique;not null" json:"year"`
	Month                int       `gorm:"index:idx_ledger_month,unique;not null" json:"month"`
	LegalOvertimeMinutes int       `gorm:"not null" json:"legalOvertimeMinutes"`
	UpdatedAt            time.Time `json:"updatedAt"`
	CreatedAt            time.Time `json:"createdAt"`
}

func (e *OvertimeLedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
