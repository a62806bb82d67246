package riskscore

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"puantaj-backend/internal/models"
	"puantaj-backend/internal/resolve"
	"puantaj-backend/internal/timesheet"
)

type Service struct {
	DB       *gorm.DB
	Resolver *resolve.Service
}

func NewService(db *gorm.DB, resolver *resolve.Service) *Service {
	return &Service{DB: db, Resolver: resolver}
}

// Weights loads the operator table from settings, falling back to the
// defaults when missing or malformed.
func (s *Service) Weights() WeightConfig {
	var setting models.Setting
	if err := s.DB.Where("`key` = ?", SettingKey).Take(&setting).Error; err != nil {
		return DefaultWeights()
	}

	var cfg WeightConfig
	if err := json.Unmarshal([]byte(setting.Value), &cfg); err != nil || len(cfg.Factors) == 0 {
		log.Printf("risk weights setting unreadable, using defaults: %v", err)
		return DefaultWeights()
	}
	if cfg.Bands.Watch == 0 && cfg.Bands.Critical == 0 {
		cfg.Bands = DefaultWeights().Bands
	}
	return cfg
}

// SaveWeights validates and stores the operator table.
func (s *Service) SaveWeights(cfg WeightConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	var setting models.Setting
	err = s.DB.Where("`key` = ?", SettingKey).Take(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return s.DB.Create(&models.Setting{Key: SettingKey, Value: string(raw)}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = string(raw)
	return s.DB.Save(&setting).Error
}

// Score resolves the trailing window ending at asOf and scores it. Days the
// engine cannot resolve because no rule covers them are skipped: they carry
// no compliance signal.
func (s *Service) Score(employee models.Employee, asOf time.Time) (Result, error) {
	cfg := s.Weights()

	days := make([]timesheet.Day, 0, WindowDays)
	for offset := WindowDays - 1; offset >= 0; offset-- {
		date := asOf.AddDate(0, 0, -offset)
		day, err := s.Resolver.Day(employee, date)
		if err == timesheet.ErrNoRuleConfigured {
			continue
		}
		if err != nil {
			return Result{}, err
		}
		days = append(days, day)
	}

	total, status, factors := cfg.Score(CountFlags(days, cfg))
	return Result{
		EmployeeID: employee.ID,
		Score:      total,
		Status:     status,
		Factors:    factors,
		WindowDays: WindowDays,
	}, nil
}
