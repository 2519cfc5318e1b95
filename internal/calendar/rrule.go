package calendar

import (
	"fmt"
	"strings"
	"time"

	"schoolsync/backend/internal/model"
)

// singleOccurrenceRule is stamped on events without a recurrence
// descriptor. Every event carries some rule; there is no ruleless event.
const singleOccurrenceRule = "RRULE:FREQ=DAILY;COUNT=1"

// untilLayout is the UNTIL timestamp format (UTC, RFC 5545 basic form).
const untilLayout = "20060102T150405Z"

// recurrenceRule builds the RRULE string for an event.
//
// With a descriptor the series ends at start + (weeks-1) weeks + 4 days,
// which closes the last school week (Mon-Fri) of the series.
func recurrenceRule(start time.Time, freq *model.Frequency) string {
	if freq == nil {
		return singleOccurrenceRule
	}

	until := start.AddDate(0, 0, (freq.Weeks-1)*7+4).UTC().Format(untilLayout)

	return fmt.Sprintf("RRULE:FREQ=%s;BYDAY=%s;UNTIL=%s",
		strings.ToUpper(freq.Freq), freq.ByDay, until)
}

// RecurrenceRule exposes the event rule for feed rendering.
func RecurrenceRule(start time.Time, freq *model.Frequency) string {
	return recurrenceRule(start, freq)
}
