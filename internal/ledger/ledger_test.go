package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"puantaj-backend/internal/models"
)

func monthEntries(minutes ...int) []models.OvertimeLedgerEntry {
	entries := make([]models.OvertimeLedgerEntry, 0, len(minutes))
	for i, m := range minutes {
		entries = append(entries, models.OvertimeLedgerEntry{
			Month:                i + 1,
			LegalOvertimeMinutes: m,
		})
	}
	return entries
}

func TestSummarizeCapState(t *testing.T) {
	const capMinutes = 16200
	employeeID := uuid.New()

	tests := []struct {
		name          string
		expectedMonth int
		entries       []models.OvertimeLedgerEntry
		wantUsed      int
		wantRemaining int
		wantState     CapState
	}{
		{
			name:          "full coverage under cap",
			expectedMonth: 3,
			entries:       monthEntries(1000, 2000, 3000),
			wantUsed:      6000,
			wantRemaining: 10200,
			wantState:     CapOK,
		},
		{
			name:          "partial coverage under cap is unknown, never ok",
			expectedMonth: 6,
			entries:       monthEntries(1000, 2000, 3000),
			wantUsed:      6000,
			wantRemaining: 10200,
			wantState:     CapUnknown,
		},
		{
			name:          "no coverage is unknown",
			expectedMonth: 4,
			entries:       nil,
			wantUsed:      0,
			wantRemaining: capMinutes,
			wantState:     CapUnknown,
		},
		{
			name:          "exceeded from partial data still reports",
			expectedMonth: 12,
			entries:       monthEntries(9000, 9000),
			wantUsed:      18000,
			wantRemaining: 0,
			wantState:     CapExceeded,
		},
		{
			name:          "exceeded from full coverage",
			expectedMonth: 2,
			entries:       monthEntries(16000, 1000),
			wantUsed:      17000,
			wantRemaining: 0,
			wantState:     CapExceeded,
		},
		{
			name:          "exactly at cap with full coverage is ok",
			expectedMonth: 1,
			entries:       monthEntries(16200),
			wantUsed:      16200,
			wantRemaining: 0,
			wantState:     CapOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := summarize(employeeID, 2024, capMinutes, tt.expectedMonth, tt.entries)
			if snap.UsedMinutes != tt.wantUsed {
				t.Errorf("UsedMinutes = %d, want %d", snap.UsedMinutes, tt.wantUsed)
			}
			if snap.RemainingMinutes != tt.wantRemaining {
				t.Errorf("RemainingMinutes = %d, want %d", snap.RemainingMinutes, tt.wantRemaining)
			}
			if snap.CapState != tt.wantState {
				t.Errorf("CapState = %q, want %q", snap.CapState, tt.wantState)
			}
			if snap.CoveredMonths != len(tt.entries) {
				t.Errorf("CoveredMonths = %d, want %d", snap.CoveredMonths, len(tt.entries))
			}
			if snap.ExpectedMonths != tt.expectedMonth {
				t.Errorf("ExpectedMonths = %d, want %d", snap.ExpectedMonths, tt.expectedMonth)
			}
		})
	}
}

func TestMonthSpan(t *testing.T) {
	date := func(year int, month time.Month) time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		year       int
		hiredAt    time.Time
		now        time.Time
		wantFirst  int
		wantLast   int
		wantActive bool
	}{
		{"past full year", 2023, date(2020, time.January), date(2024, time.June), 1, 12, true},
		{"current year bounded by now", 2024, date(2020, time.January), date(2024, time.June), 1, 6, true},
		{"hire year starts at hire month", 2024, date(2024, time.March), date(2024, time.June), 3, 6, true},
		{"year before hire is inactive", 2023, date(2024, time.March), date(2024, time.June), 0, 0, false},
		{"future year is inactive", 2025, date(2020, time.January), date(2024, time.June), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, active := monthSpan(tt.year, tt.hiredAt, tt.now)
			if first != tt.wantFirst || last != tt.wantLast || active != tt.wantActive {
				t.Errorf("monthSpan = (%d, %d, %v), want (%d, %d, %v)",
					first, last, active, tt.wantFirst, tt.wantLast, tt.wantActive)
			}
		})
	}
}
