package handlers

import (
	"testing"
	"time"
)

func TestParseLocalDateKeepsCalendarDay(t *testing.T) {
	// A timezone west of UTC: parsing in UTC and converting afterwards
	// would land on the previous local day.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	date, err := parseLocalDate("2024-03-04", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2024 || date.Month() != time.March || date.Day() != 4 {
		t.Errorf("resolved %s, want 2024-03-04", date.Format("2006-01-02"))
	}
	if hour, min, sec := date.Clock(); hour != 0 || min != 0 || sec != 0 {
		t.Errorf("time = %02d:%02d:%02d, want local midnight", hour, min, sec)
	}
	if date.Location() != loc {
		t.Errorf("location = %v, want %v", date.Location(), loc)
	}

	// The same instant read back in the org timezone stays on the day the
	// client asked for.
	if got := date.In(loc).Format("2006-01-02"); got != "2024-03-04" {
		t.Errorf("local day = %s, want 2024-03-04", got)
	}
}

func TestParseLocalDateNilLocation(t *testing.T) {
	date, err := parseLocalDate("2024-03-04", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Location() != time.UTC {
		t.Errorf("location = %v, want UTC fallback", date.Location())
	}
}

func TestParseLocalDateRejectsMalformed(t *testing.T) {
	for _, value := range []string{"04-03-2024", "2024-3-4", "2024-03-04T00:00:00Z", ""} {
		if _, err := parseLocalDate(value, time.UTC); err == nil {
			t.Errorf("value %q accepted, want error", value)
		}
	}
}
