package service

import (
	"context"
	"strings"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"schoolsync/backend/internal/calendar"
)

// ExportFeed renders the full schedule as an iCalendar document so staff
// can subscribe from any calendar client without Google access.
func (s *classService) ExportFeed(ctx context.Context) (string, error) {
	classes, err := s.repo.Class.ListAll(ctx)
	if err != nil {
		s.logger.Error("class feed query failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//schoolsync//schedule//EN")

	for i := range classes {
		c := &classes[i]

		event := cal.AddEvent(c.ClassID)
		event.SetDtStampTime(c.UpdatedAt)
		event.SetStartAt(c.StartsAt)
		event.SetEndAt(c.EndsAt)
		event.SetSummary(c.Name)
		event.SetLocation("online")
		if c.Description != "" {
			event.SetDescription(c.Description)
		}
		if c.Frequency != nil {
			rule := calendar.RecurrenceRule(c.StartsAt, c.Frequency)
			event.AddRrule(strings.TrimPrefix(rule, "RRULE:"))
		}
	}

	return cal.Serialize(), nil
}
