package timesheet

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return parsed
}

func event(t *testing.T, kind EventType, value string) Event {
	t.Helper()
	return Event{ID: uuid.New(), Type: kind, At: at(t, value)}
}

func TestReducePairsFirstInFirstOut(t *testing.T) {
	in := event(t, EventIn, "2024-03-04 08:58")
	out := event(t, EventOut, "2024-03-04 18:10")

	red := Reduce([]Event{out, in}, nil, nil)

	if red.In == nil || red.In.ID != in.ID {
		t.Fatalf("expected earliest IN as check-in")
	}
	if red.Out == nil || red.Out.ID != out.ID {
		t.Fatalf("expected first OUT after IN as check-out")
	}
	if got := red.grossMinutes(); got != 552 {
		t.Fatalf("gross minutes = %d, want 552", got)
	}
	if len(red.Flags) != 0 {
		t.Fatalf("unexpected flags %v", red.Flags)
	}
}

func TestReduceDuplicateCheckin(t *testing.T) {
	first := event(t, EventIn, "2024-03-04 09:00")
	second := event(t, EventIn, "2024-03-04 09:05")
	out := event(t, EventOut, "2024-03-04 17:00")

	red := Reduce([]Event{first, second, out}, nil, nil)

	if red.In.ID != first.ID {
		t.Fatalf("first IN must be retained")
	}
	if len(red.Duplicates) != 1 || red.Duplicates[0] != second.ID {
		t.Fatalf("second IN must be set aside as duplicate, got %v", red.Duplicates)
	}
	if !hasFlag(red.Flags, FlagDuplicateEvent) {
		t.Fatalf("missing DUPLICATE_EVENT, flags %v", red.Flags)
	}
	// Worked time computed from 09:00 only.
	if got := red.grossMinutes(); got != 480 {
		t.Fatalf("gross minutes = %d, want 480", got)
	}
}

func TestReduceCrossMidnightCheckout(t *testing.T) {
	in := event(t, EventIn, "2024-03-04 22:00")
	out := event(t, EventOut, "2024-03-05 06:00")

	red := Reduce([]Event{in}, []Event{out}, nil)

	if !red.CrossMidnight {
		t.Fatalf("expected cross-midnight attribution")
	}
	if red.Out == nil || red.Out.ID != out.ID {
		t.Fatalf("next-morning OUT not adopted")
	}
	if !hasFlag(red.Flags, FlagCrossMidnightCheckout) {
		t.Fatalf("missing CROSS_MIDNIGHT_CHECKOUT, flags %v", red.Flags)
	}
	if len(red.Consumed) != 1 || red.Consumed[0] != out.ID {
		t.Fatalf("adopted OUT must be reported as consumed")
	}
	if got := red.grossMinutes(); got != 480 {
		t.Fatalf("gross minutes = %d, want 480", got)
	}
}

func TestReduceCrossMidnightBlockedByInterveningIn(t *testing.T) {
	in := event(t, EventIn, "2024-03-04 22:00")
	nextIn := event(t, EventIn, "2024-03-05 05:00")
	nextOut := event(t, EventOut, "2024-03-05 06:00")

	red := Reduce([]Event{in}, []Event{nextIn, nextOut}, nil)

	if red.CrossMidnight || red.Out != nil {
		t.Fatalf("IN before the morning OUT must block re-attribution")
	}
	if !hasFlag(red.Flags, FlagMissingOut) {
		t.Fatalf("expected MISSING_OUT, flags %v", red.Flags)
	}
}

func TestReduceSkipConsumedEvents(t *testing.T) {
	out := event(t, EventOut, "2024-03-05 06:00")
	in := event(t, EventIn, "2024-03-05 09:00")
	dayEnd := event(t, EventOut, "2024-03-05 18:00")

	red := Reduce([]Event{out, in, dayEnd}, nil, map[uuid.UUID]bool{out.ID: true})

	if red.In == nil || red.In.ID != in.ID {
		t.Fatalf("consumed OUT must not shadow the day's IN")
	}
	if red.Out == nil || red.Out.ID != dayEnd.ID {
		t.Fatalf("want the 18:00 OUT, got %+v", red.Out)
	}
	if len(red.Flags) != 0 {
		t.Fatalf("unexpected flags %v", red.Flags)
	}
}

func TestReduceSecondShift(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		closed   bool
		wantFlag Flag
		wantMin  int
	}{
		{"open unapproved", false, false, FlagOpenShiftActive, 480},
		{"closed unapproved", false, true, FlagOpenShiftActive, 480},
		{"closed approved", true, true, FlagSecondCheckinApproved, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []Event{
				event(t, EventIn, "2024-03-04 09:00"),
				event(t, EventOut, "2024-03-04 17:00"),
			}
			second := event(t, EventIn, "2024-03-04 19:00")
			second.Approved = tt.approved
			events = append(events, second)
			if tt.closed {
				events = append(events, event(t, EventOut, "2024-03-04 21:00"))
			}

			red := Reduce(events, nil, nil)

			if red.Second == nil {
				t.Fatalf("second shift not detected")
			}
			if !hasFlag(red.Flags, tt.wantFlag) {
				t.Fatalf("want flag %s, got %v", tt.wantFlag, red.Flags)
			}
			if got := red.grossMinutes(); got != tt.wantMin {
				t.Fatalf("gross minutes = %d, want %d", got, tt.wantMin)
			}
		})
	}
}

func TestReduceMissingHalves(t *testing.T) {
	onlyIn := Reduce([]Event{event(t, EventIn, "2024-03-04 09:00")}, nil, nil)
	if !hasFlag(onlyIn.Flags, FlagMissingOut) {
		t.Fatalf("expected MISSING_OUT, flags %v", onlyIn.Flags)
	}

	onlyOut := Reduce([]Event{event(t, EventOut, "2024-03-04 18:00")}, nil, nil)
	if !hasFlag(onlyOut.Flags, FlagMissingIn) {
		t.Fatalf("expected MISSING_IN, flags %v", onlyOut.Flags)
	}
	if onlyOut.grossMinutes() != 0 {
		t.Fatalf("half a pair must not produce worked minutes")
	}
}

func hasFlag(flags []Flag, code Flag) bool {
	for _, f := range flags {
		if f == code {
			return true
		}
	}
	return false
}
