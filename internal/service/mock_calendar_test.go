package service

import (
	"context"
	"fmt"

	"schoolsync/backend/internal/calendar"
)

// fakeEvent is the gateway-side view of a mirrored event.
type fakeEvent struct {
	req       calendar.EventRequest
	attendees []string
}

// fakeGateway records calendar calls and supports failure injection.
type fakeGateway struct {
	loggedOut bool
	nextID    int
	events    map[string]*fakeEvent
	calls     []string

	createErr error
	updateErr error
	deleteErr error
	addErr    error
	removeErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{events: make(map[string]*fakeEvent)}
}

func (g *fakeGateway) EnsureSession(context.Context) error {
	if g.loggedOut {
		return calendar.ErrLoginRequired
	}
	return nil
}

func (g *fakeGateway) CreateEvent(_ context.Context, req calendar.EventRequest) (string, error) {
	g.calls = append(g.calls, "create")
	if g.createErr != nil {
		return "", g.createErr
	}
	g.nextID++
	id := fmt.Sprintf("evt-%d", g.nextID)
	g.events[id] = &fakeEvent{req: req}
	return id, nil
}

func (g *fakeGateway) UpdateEvent(_ context.Context, eventID string, req calendar.EventRequest) error {
	g.calls = append(g.calls, "update")
	if g.updateErr != nil {
		return g.updateErr
	}
	event, ok := g.events[eventID]
	if !ok {
		return &calendar.Error{Op: "update", EventID: eventID, Err: fmt.Errorf("unknown event")}
	}
	event.req = req
	return nil
}

func (g *fakeGateway) DeleteEvent(_ context.Context, eventID string) error {
	g.calls = append(g.calls, "delete")
	if g.deleteErr != nil {
		return g.deleteErr
	}
	delete(g.events, eventID)
	return nil
}

func (g *fakeGateway) AddAttendee(_ context.Context, eventID, email string) ([]string, error) {
	g.calls = append(g.calls, "add:"+email)
	if g.addErr != nil {
		return nil, g.addErr
	}
	event, ok := g.events[eventID]
	if !ok {
		return nil, &calendar.Error{Op: "attendees", EventID: eventID, Err: fmt.Errorf("unknown event")}
	}
	for _, a := range event.attendees {
		if a == email {
			return event.attendees, nil
		}
	}
	event.attendees = append(event.attendees, email)
	return event.attendees, nil
}

func (g *fakeGateway) RemoveAttendee(_ context.Context, eventID, email string) ([]string, error) {
	g.calls = append(g.calls, "remove:"+email)
	if g.removeErr != nil {
		return nil, g.removeErr
	}
	event, ok := g.events[eventID]
	if !ok {
		return nil, &calendar.Error{Op: "attendees", EventID: eventID, Err: fmt.Errorf("unknown event")}
	}
	for i, a := range event.attendees {
		if a == email {
			event.attendees = append(event.attendees[:i], event.attendees[i+1:]...)
			break
		}
	}
	return event.attendees, nil
}
