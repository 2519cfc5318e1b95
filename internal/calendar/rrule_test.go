package calendar

import (
	"testing"
	"time"

	"schoolsync/backend/internal/model"
)

func TestRecurrenceRule_Weekly(t *testing.T) {
	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC) // Monday

	freq := &model.Frequency{Freq: "weekly", ByDay: "MO,WE,FR", Weeks: 2}
	rule := recurrenceRule(start, freq)

	// UNTIL = start + 1 week + 4 days = 2024-05-17 09:00 UTC
	want := "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR;UNTIL=20240517T090000Z"
	if rule != want {
		t.Errorf("rule = %q, want %q", rule, want)
	}
}

func TestRecurrenceRule_SingleWeek(t *testing.T) {
	start := time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)

	freq := &model.Frequency{Freq: "daily", ByDay: "MO,TU,WE,TH,FR", Weeks: 1}
	rule := recurrenceRule(start, freq)

	// weeks=1 closes the series four days after the start
	want := "RRULE:FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR;UNTIL=20240510T143000Z"
	if rule != want {
		t.Errorf("rule = %q, want %q", rule, want)
	}
}

func TestRecurrenceRule_NoDescriptor(t *testing.T) {
	rule := recurrenceRule(time.Now(), nil)
	if rule != "RRULE:FREQ=DAILY;COUNT=1" {
		t.Errorf("rule = %q, want single-occurrence rule", rule)
	}
}

func TestRecurrenceRule_UppercasesFrequency(t *testing.T) {
	start := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)

	rule := recurrenceRule(start, &model.Frequency{Freq: "Weekly", ByDay: "TU", Weeks: 3})
	want := "RRULE:FREQ=WEEKLY;BYDAY=TU;UNTIL=20240920T080000Z"
	if rule != want {
		t.Errorf("rule = %q, want %q", rule, want)
	}
}
