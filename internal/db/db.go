package db

import (
	"puantaj-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.OTP{},
		&models.RefreshToken{},
		&models.Department{},
		&models.Employee{},
		&models.AttendanceEvent{},
		&models.Shift{},
		&models.ShiftAssignment{},
		&models.WeeklyRule{},
		&models.WorkRule{},
		&models.DayOverride{},
		&models.OvertimeLedgerEntry{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
