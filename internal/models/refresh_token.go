package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is an opaque session handle. Tokens rotate on every refresh:
// the presented token is revoked and a new one issued, so a leaked token
// stops working once the legitimate client refreshes. Revoked rows are kept
// instead of deleted; a revoked token showing up again is a signal worth
// having in the table.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Token     string    `gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the token can still be exchanged for a new pair.
func (r *RefreshToken) Active(now time.Time) bool {
	return r.RevokedAt == nil && now.Before(r.ExpiresAt)
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
