package resolve

import (
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"puantaj-backend/internal/config"
	"puantaj-backend/internal/timesheet"
)

func TestEngineConfig(t *testing.T) {
	appCfg := config.Config{
		OrgTimezone:            "Europe/Istanbul",
		CrossMidnightWindowMin: 360,
		DailyMaxMinutes:        660,
		NightWindowStart:       "20:00",
		NightWindowEnd:         "06:00",
		NightMaxMinutes:        450,
		DailyLegalOvertimeMax:  180,
		UnderworkedThreshold:   1.0,
	}

	cfg, err := EngineConfig(appCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Location == nil || cfg.Location.String() != "Europe/Istanbul" {
		t.Fatalf("location = %v, want Europe/Istanbul", cfg.Location)
	}
	if cfg.CrossMidnightWindow != 6*time.Hour {
		t.Fatalf("window = %v, want 6h", cfg.CrossMidnightWindow)
	}
	if cfg.NightStartMin != 1200 || cfg.NightEndMin != 360 {
		t.Fatalf("night window = %d-%d, want 1200-360", cfg.NightStartMin, cfg.NightEndMin)
	}
}

func TestEngineConfigRejectsBadWindow(t *testing.T) {
	appCfg := config.Config{OrgTimezone: "UTC", NightWindowStart: "25:00", NightWindowEnd: "06:00"}
	if _, err := EngineConfig(appCfg); err == nil {
		t.Fatalf("expected error for malformed night window")
	}
}

func TestWorkerPoolCollectsResultsAndErrors(t *testing.T) {
	pool := newWorkerPool(3)

	var running int32
	var peak int32
	failing := uuid.New()

	for i := 0; i < 10; i++ {
		id := uuid.New()
		if i == 4 {
			id = failing
		}
		month := i + 1
		shouldFail := i == 4
		pool.submit(id, func() (MonthResult, error) {
			current := atomic.AddInt32(&running, 1)
			for {
				observed := atomic.LoadInt32(&peak)
				if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			if shouldFail {
				return MonthResult{}, errors.New("boom")
			}
			return MonthResult{Summary: timesheet.MonthlySummary{Month: month}}, nil
		})
	}

	results, errs := pool.wait()

	if len(results) != 9 {
		t.Fatalf("results = %d, want 9", len(results))
	}
	if len(errs) != 1 || errs[failing] == nil {
		t.Fatalf("errs = %v, want one entry for the failing employee", errs)
	}
	if atomic.LoadInt32(&peak) > 3 {
		t.Fatalf("pool ran %d tasks at once, bound is 3", peak)
	}

	months := make([]int, 0, len(results))
	for _, r := range results {
		months = append(months, r.Summary.Month)
	}
	sort.Ints(months)
	want := []int{1, 2, 3, 4, 6, 7, 8, 9, 10}
	for i, m := range want {
		if months[i] != m {
			t.Fatalf("months = %v, want %v", months, want)
		}
	}
}
