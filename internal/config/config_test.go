package config

import (
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/puantaj?parseTime=true")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OrgTimezone != "Europe/Istanbul" {
		t.Errorf("OrgTimezone = %q, want Europe/Istanbul", cfg.OrgTimezone)
	}
	if cfg.CrossMidnightWindowMin != 360 {
		t.Errorf("CrossMidnightWindowMin = %d, want 360", cfg.CrossMidnightWindowMin)
	}
	if cfg.DailyMaxMinutes != 660 {
		t.Errorf("DailyMaxMinutes = %d, want 660", cfg.DailyMaxMinutes)
	}
	if cfg.AnnualOvertimeCapMin != 16200 {
		t.Errorf("AnnualOvertimeCapMin = %d, want 16200", cfg.AnnualOvertimeCapMin)
	}
	if cfg.UnderworkedThreshold != 1.0 {
		t.Errorf("UnderworkedThreshold = %v, want 1.0", cfg.UnderworkedThreshold)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing env")
	}
	if !strings.Contains(err.Error(), "DB_DSN") || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error %q should name both missing variables", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timezone", "ORG_TIMEZONE", "Mars/Olympus"},
		{"bad night start", "NIGHT_WINDOW_START", "25:00"},
		{"bad night end", "NIGHT_WINDOW_END", "evening"},
		{"threshold above one", "UNDERWORKED_THRESHOLD", "1.5"},
		{"threshold zero", "UNDERWORKED_THRESHOLD", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
