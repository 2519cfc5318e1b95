// Package calendar wraps the Google Calendar API behind a small gateway
// used by the scheduling and reservation services. Every class is mirrored
// to exactly one calendar event; reservations are mirrored as attendees.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schoolsync/backend/internal/model"
)

// ErrLoginRequired is returned when no valid calendar session exists.
// Callers surface it as an unauthorized condition.
var ErrLoginRequired = errors.New("calendar login required")

// Error reports a failed calendar API call with its underlying cause.
// The gateway never retries; the caller decides whether to abort.
type Error struct {
	Op      string // "create" | "update" | "delete" | "get" | "attendees"
	EventID string
	Err     error
}

func (e *Error) Error() string {
	if e.EventID != "" {
		return fmt.Sprintf("calendar %s (event %s): %v", e.Op, e.EventID, e.Err)
	}
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// EventRequest is the domain-side description of a calendar event.
type EventRequest struct {
	Name        string
	StartsAt    time.Time
	EndsAt      time.Time
	Description string
	Frequency   *model.Frequency
}

// Gateway is the calendar side-effect boundary.
//
// All operations require an authorized session; EnsureSession lets callers
// refuse cheaply before doing any local work. AddAttendee is idempotent,
// RemoveAttendee is a no-op when the email is absent; both return the
// event's attendee email list after the call.
type Gateway interface {
	EnsureSession(ctx context.Context) error
	CreateEvent(ctx context.Context, req EventRequest) (string, error)
	UpdateEvent(ctx context.Context, eventID string, req EventRequest) error
	DeleteEvent(ctx context.Context, eventID string) error
	AddAttendee(ctx context.Context, eventID, email string) ([]string, error)
	RemoveAttendee(ctx context.Context, eventID, email string) ([]string, error)
}
