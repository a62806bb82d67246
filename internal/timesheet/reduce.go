package timesheet

import (
	"sort"

	"github.com/google/uuid"
)

// Reduction is the canonical (in, out) pair distilled from a day's raw
// events, plus any second shift and the flags raised on the way.
type Reduction struct {
	In  *Event
	Out *Event

	// Second is a check-in recorded after a completed pair. Its minutes
	// count only when matched with an OUT and explicitly approved.
	Second *SecondShift

	// CrossMidnight is set when Out was re-attributed from the next
	// calendar day's early-morning window.
	CrossMidnight bool

	// Consumed lists next-morning event IDs claimed by this day.
	Consumed []uuid.UUID

	// Duplicates lists event IDs that were set aside as duplicates.
	Duplicates []uuid.UUID

	Flags []Flag
}

type SecondShift struct {
	In       *Event
	Out      *Event
	Approved bool
}

// grossMinutes is the raw span of the primary pair plus an approved and
// completed second shift. Break deduction happens later.
func (r Reduction) grossMinutes() int {
	if r.In == nil || r.Out == nil {
		return 0
	}
	total := int(r.Out.At.Sub(r.In.At).Minutes())
	if total < 0 {
		total = 0
	}
	if r.Second != nil && r.Second.Approved && r.Second.Out != nil {
		extra := int(r.Second.Out.At.Sub(r.Second.In.At).Minutes())
		if extra > 0 {
			total += extra
		}
	}
	return total
}

// Reduce groups one local day's events into a canonical pair.
//
// The earliest IN is the check-in and the first OUT after it the check-out.
// Extra INs before a matching OUT are duplicates. An IN after a completed
// pair opens a second shift that needs admin approval to count. When the day
// ends without an OUT, the first event of the next morning window is used if
// it is an OUT with no intervening IN, and the day is marked cross-midnight.
func Reduce(events []Event, nextMorning []Event, skip map[uuid.UUID]bool) Reduction {
	red := Reduction{}

	ordered := make([]Event, 0, len(events))
	for _, e := range events {
		if skip[e.ID] {
			continue
		}
		ordered = append(ordered, e)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].At.Before(ordered[j].At)
	})

	for i := range ordered {
		e := &ordered[i]
		switch e.Type {
		case EventIn:
			if red.In == nil {
				// A stranded OUT before the first IN cannot pair with
				// anything later; set it aside as a duplicate.
				if red.Out != nil {
					red.markDuplicate(red.Out.ID)
					red.Out = nil
				}
				red.In = e
				continue
			}
			if red.Out == nil {
				red.markDuplicate(e.ID)
				continue
			}
			if red.Second == nil {
				red.Second = &SecondShift{In: e, Approved: e.Approved}
				continue
			}
			red.markDuplicate(e.ID)
		case EventOut:
			if red.In != nil && red.Out == nil {
				red.Out = e
				continue
			}
			if red.In == nil && red.Out == nil {
				red.Out = e
				continue
			}
			if red.Second != nil && red.Second.Out == nil {
				red.Second.Out = e
				if e.Approved {
					red.Second.Approved = true
				}
				continue
			}
			red.markDuplicate(e.ID)
		}
	}

	if red.In != nil && red.Out == nil {
		red.adoptNextMorning(nextMorning, skip)
	}

	if red.In == nil {
		red.Flags = append(red.Flags, FlagMissingIn)
	}
	if red.Out == nil {
		red.Flags = append(red.Flags, FlagMissingOut)
	}
	if red.Second != nil {
		if red.Second.Out != nil && red.Second.Approved {
			red.Flags = append(red.Flags, FlagSecondCheckinApproved)
		} else {
			red.Flags = append(red.Flags, FlagOpenShiftActive)
		}
	}

	return red
}

// adoptNextMorning claims the next day's first event as this day's OUT when
// it is an OUT inside the cross-midnight window with no IN before it.
func (r *Reduction) adoptNextMorning(nextMorning []Event, skip map[uuid.UUID]bool) {
	for i := range nextMorning {
		e := &nextMorning[i]
		if skip[e.ID] {
			continue
		}
		if e.Type != EventOut {
			return
		}
		r.Out = e
		r.CrossMidnight = true
		r.Consumed = append(r.Consumed, e.ID)
		r.Flags = append(r.Flags, FlagCrossMidnightCheckout)
		return
	}
}

func (r *Reduction) markDuplicate(id uuid.UUID) {
	r.Duplicates = append(r.Duplicates, id)
	if len(r.Duplicates) == 1 {
		r.Flags = append(r.Flags, FlagDuplicateEvent)
	}
}
