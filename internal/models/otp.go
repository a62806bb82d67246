package models

import "time"

// OTP stores bcrypt-hashed one-time codes mailed during password reset.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"index;size:255;not null"`
	CodeHash  string    `gorm:"size:255;not null"`
	Purpose   string    `gorm:"size:32;not null;default:password_reset"`
	ExpiresAt time.Time `gorm:"index"`
	UsedAt    *time.Time
	CreatedAt time.Time
}
