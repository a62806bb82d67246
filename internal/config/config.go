package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Addr              string
	DbDsn             string
	JwtSecret         string
	JwtAccessMinutes  int
	JwtRefreshHours   int
	OtpMinutes        int
	AdminBootstrap    string
	SmtpHost          string
	SmtpPort          int
	SmtpUser          string
	SmtpPass          string
	SmtpFrom          string
	AllowedOriginsRaw string

	// Day resolution / compliance settings. Day boundaries are fixed to the
	// organization timezone, never the server locale.
	OrgTimezone             string
	CrossMidnightWindowMin  int
	DailyMaxMinutes         int
	NightWindowStart        string
	NightWindowEnd          string
	NightMaxMinutes         int
	AnnualOvertimeCapMin    int
	DailyLegalOvertimeMax   int
	UnderworkedThreshold    float64
	ResolveWorkers          int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", ":8080"),
		DbDsn:             os.Getenv("DB_DSN"),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:  getEnvInt("JWT_ACCESS_MINUTES", 15),
		JwtRefreshHours:   getEnvInt("JWT_REFRESH_HOURS", 168),
		OtpMinutes:        getEnvInt("OTP_MINUTES", 10),
		AdminBootstrap:    os.Getenv("ADMIN_BOOTSTRAP_EMAIL"),
		SmtpHost:          os.Getenv("SMTP_HOST"),
		SmtpPort:          getEnvInt("SMTP_PORT", 587),
		SmtpUser:          os.Getenv("SMTP_USER"),
		SmtpPass:          os.Getenv("SMTP_PASS"),
		SmtpFrom:          os.Getenv("SMTP_FROM"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),

		OrgTimezone:            getEnv("ORG_TIMEZONE", "Europe/Istanbul"),
		CrossMidnightWindowMin: getEnvInt("CROSS_MIDNIGHT_WINDOW_MINUTES", 360),
		DailyMaxMinutes:        getEnvInt("DAILY_MAX_MINUTES", 660),
		NightWindowStart:       getEnv("NIGHT_WINDOW_START", "20:00"),
		NightWindowEnd:         getEnv("NIGHT_WINDOW_END", "06:00"),
		NightMaxMinutes:        getEnvInt("NIGHT_MAX_MINUTES", 450),
		AnnualOvertimeCapMin:   getEnvInt("ANNUAL_OVERTIME_CAP_MINUTES", 16200),
		DailyLegalOvertimeMax:  getEnvInt("DAILY_LEGAL_OVERTIME_MAX_MINUTES", 180),
		UnderworkedThreshold:   getEnvFloat("UNDERWORKED_THRESHOLD", 1.0),
		ResolveWorkers:         getEnvInt("RESOLVE_WORKERS", 8),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	if _, err := time.LoadLocation(cfg.OrgTimezone); err != nil {
		return cfg, fmt.Errorf("invalid ORG_TIMEZONE %q: %w", cfg.OrgTimezone, err)
	}
	if _, err := time.Parse("15:04", cfg.NightWindowStart); err != nil {
		return cfg, fmt.Errorf("invalid NIGHT_WINDOW_START %q", cfg.NightWindowStart)
	}
	if _, err := time.Parse("15:04", cfg.NightWindowEnd); err != nil {
		return cfg, fmt.Errorf("invalid NIGHT_WINDOW_END %q", cfg.NightWindowEnd)
	}
	if cfg.UnderworkedThreshold <= 0 || cfg.UnderworkedThreshold > 1 {
		return cfg, fmt.Errorf("UNDERWORKED_THRESHOLD must be in (0,1], got %v", cfg.UnderworkedThreshold)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
