package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"schoolsync/backend/config"
)

const eventLocation = "online"

// googleGateway implements Gateway against the Google Calendar v3 API.
type googleGateway struct {
	sessions   *SessionManager
	calendarID string
	timezone   string
	colorID    string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewGoogleGateway builds the production gateway.
func NewGoogleGateway(cfg *config.CalendarConfig, sessions *SessionManager, logger *zap.Logger) Gateway {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &googleGateway{
		sessions:   sessions,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
		colorID:    cfg.ColorID,
		timeout:    timeout,
		logger:     logger,
	}
}

// EnsureSession reports ErrLoginRequired when no authorized session exists.
func (g *googleGateway) EnsureSession(_ context.Context) error {
	if !g.sessions.Authorized() {
		return ErrLoginRequired
	}
	return nil
}

// buildEvent translates an EventRequest into the API payload. The event
// always carries a recurrence rule and the two default reminders.
func (g *googleGateway) buildEvent(req EventRequest) *gcal.Event {
	return &gcal.Event{
		Summary:     req.Name,
		Location:    eventLocation,
		Description: req.Description,
		ColorId:     g.colorID,
		Start: &gcal.EventDateTime{
			DateTime: req.StartsAt.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.EndsAt.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		Recurrence: []string{recurrenceRule(req.StartsAt, req.Frequency)},
		Attendees:  []*gcal.EventAttendee{},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: 60},
				{Method: "email", Minutes: 1440},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// CreateEvent inserts a new event and returns its provider-assigned id.
func (g *googleGateway) CreateEvent(ctx context.Context, req EventRequest) (string, error) {
	svc, err := g.sessions.Service(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	created, err := svc.Events.Insert(g.calendarID, g.buildEvent(req)).Context(ctx).Do()
	if err != nil {
		return "", &Error{Op: "create", Err: err}
	}

	g.logger.Info("calendar event created",
		zap.String("event_id", created.Id),
		zap.String("summary", req.Name),
	)
	return created.Id, nil
}

// UpdateEvent rewrites an existing event's payload. Current attendees are
// fetched first and replayed so that an update never drops reservations.
func (g *googleGateway) UpdateEvent(ctx context.Context, eventID string, req EventRequest) error {
	svc, err := g.sessions.Service(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	current, err := svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return &Error{Op: "get", EventID: eventID, Err: err}
	}

	event := g.buildEvent(req)
	event.Attendees = current.Attendees

	if _, err := svc.Events.Update(g.calendarID, eventID, event).Context(ctx).Do(); err != nil {
		return &Error{Op: "update", EventID: eventID, Err: err}
	}

	g.logger.Info("calendar event updated", zap.String("event_id", eventID))
	return nil
}

// DeleteEvent removes an event.
func (g *googleGateway) DeleteEvent(ctx context.Context, eventID string) error {
	svc, err := g.sessions.Service(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return &Error{Op: "delete", EventID: eventID, Err: err}
	}

	g.logger.Info("calendar event deleted", zap.String("event_id", eventID))
	return nil
}

// AddAttendee appends an email to the event's attendee list. Already
// present emails are left alone and no second entry is written.
func (g *googleGateway) AddAttendee(ctx context.Context, eventID, email string) ([]string, error) {
	svc, err := g.sessions.Service(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	event, err := svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Op: "get", EventID: eventID, Err: err}
	}

	for _, a := range event.Attendees {
		if a.Email == email {
			return attendeeEmails(event.Attendees), nil
		}
	}

	event.Attendees = append(event.Attendees, &gcal.EventAttendee{Email: email})
	updated, err := svc.Events.Update(g.calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Op: "attendees", EventID: eventID, Err: err}
	}

	g.logger.Info("calendar attendee added",
		zap.String("event_id", eventID),
		zap.String("email", email),
		zap.Time("at", time.Now()),
	)
	return attendeeEmails(updated.Attendees), nil
}

// RemoveAttendee drops the first attendee entry matching the email.
// An absent email is a no-op, not an error.
func (g *googleGateway) RemoveAttendee(ctx context.Context, eventID, email string) ([]string, error) {
	svc, err := g.sessions.Service(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	event, err := svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Op: "get", EventID: eventID, Err: err}
	}

	kept := make([]*gcal.EventAttendee, 0, len(event.Attendees))
	removed := false
	for _, a := range event.Attendees {
		if !removed && a.Email == email {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return attendeeEmails(event.Attendees), nil
	}

	event.Attendees = kept
	updated, err := svc.Events.Update(g.calendarID, eventID, event).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Op: "attendees", EventID: eventID, Err: err}
	}

	g.logger.Info("calendar attendee removed",
		zap.String("event_id", eventID),
		zap.String("email", email),
		zap.Time("at", time.Now()),
	)
	return attendeeEmails(updated.Attendees), nil
}

func attendeeEmails(attendees []*gcal.EventAttendee) []string {
	emails := make([]string, 0, len(attendees))
	for _, a := range attendees {
		emails = append(emails, a.Email)
	}
	return emails
}
