package timesheet

import "strings"

// Legacy clients encoded a day's status inside the override's free-text note
// as "[MANUAL_STATUS:<marker>] reason", with a separate is_absent boolean as
// a second channel for the same fact. New records carry an explicit status
// column; this adapter keeps the old writes readable.

const legacyStatusPrefix = "[MANUAL_STATUS:"

var legacyStatusMarkers = map[string]OverrideStatus{
	"NORMAL":      OverrideNormal,
	"IZINLI":      OverrideLeave,
	"RESMI_TATIL": OverrideHoliday,
	"CALISMADI":   OverrideAbsent,
}

// DecodeLegacyNote extracts the status and the remaining free text from a
// legacy note. Without a recognized marker the status defaults to NORMAL,
// or to ABSENT when the legacy is_absent boolean was set.
func DecodeLegacyNote(note string, isAbsent bool) (OverrideStatus, string) {
	trimmed := strings.TrimSpace(note)
	if strings.HasPrefix(trimmed, legacyStatusPrefix) {
		if end := strings.Index(trimmed, "]"); end > len(legacyStatusPrefix) {
			marker := trimmed[len(legacyStatusPrefix):end]
			if status, ok := legacyStatusMarkers[marker]; ok {
				return status, strings.TrimSpace(trimmed[end+1:])
			}
		}
	}
	if isAbsent {
		return OverrideAbsent, trimmed
	}
	return OverrideNormal, trimmed
}

// statusDay maps a non-NORMAL override status to the day status and leave
// type it produces.
func statusDay(status OverrideStatus) (DayStatus, string) {
	switch status {
	case OverrideLeave:
		return StatusLeave, "LEAVE"
	case OverrideHoliday:
		return StatusHoliday, "HOLIDAY"
	case OverrideAbsent:
		return StatusAbsent, "ABSENT"
	}
	return StatusOK, ""
}
