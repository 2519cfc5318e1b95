package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/dto"
)

func TestReserveAddsRosterAttendeeAndExactlyOneInvoice(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	roster, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID:   class.ClassID,
		StudentID: student.StudentID,
		Amount:    150,
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if len(roster.Students) != 1 || roster.Students[0].Email != student.Email {
		t.Fatalf("returned roster %+v, want the reserved student", roster.Students)
	}
	if got := len(store.rosterOf(class.ClassID)); got != 1 {
		t.Fatalf("roster size %d, want 1", got)
	}
	attendees := gateway.events[class.EventID].attendees
	if len(attendees) != 1 || attendees[0] != student.Email {
		t.Fatalf("attendees %v, want [%s]", attendees, student.Email)
	}

	invoices := store.invoicesFor(student.StudentID, class.ClassID)
	if len(invoices) != 1 {
		t.Fatalf("invoice count %d, want exactly 1", len(invoices))
	}
	if invoices[0].Amount != 150 {
		t.Fatalf("invoice amount %v, want 150", invoices[0].Amount)
	}
	wantDesc := fmt.Sprintf("Reservation for: %s, at %s, Class description: %s",
		class.Name, class.StartsAt.Format(time.RFC3339), class.Description)
	if invoices[0].Description != wantDesc {
		t.Fatalf("invoice description %q, want %q", invoices[0].Description, wantDesc)
	}
}

func TestReserveFullClassHasNoSideEffects(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	seated := seedStudent(store, "seated@school.test")
	waiting := seedStudent(store, "waiting@school.test")
	class := seedClass(store, teacher.TeacherID, 1)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	if _, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID: class.ClassID, StudentID: seated.StudentID, Amount: 100,
	}); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}

	_, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID: class.ClassID, StudentID: waiting.StudentID, Amount: 100,
	})
	if !errors.Is(err, ErrClassFull) {
		t.Fatalf("got %v, want ErrClassFull", err)
	}

	if got := len(store.rosterOf(class.ClassID)); got != 1 {
		t.Fatalf("roster size %d, want 1", got)
	}
	for _, a := range gateway.events[class.EventID].attendees {
		if a == waiting.Email {
			t.Fatal("rejected student appeared as attendee")
		}
	}
	if got := len(store.invoicesFor(waiting.StudentID, class.ClassID)); got != 0 {
		t.Fatalf("rejected student billed %d invoice(s)", got)
	}
}

func TestReserveDuplicateRejected(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	req := &dto.CreateReservationRequest{ClassID: class.ClassID, StudentID: student.StudentID, Amount: 100}
	if _, err := svc.Reserve(context.Background(), req); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}
	if _, err := svc.Reserve(context.Background(), req); !errors.Is(err, ErrAlreadyReserved) {
		t.Fatalf("got %v, want ErrAlreadyReserved", err)
	}
	if got := len(store.invoicesFor(student.StudentID, class.ClassID)); got != 1 {
		t.Fatalf("invoice count %d, want 1 after duplicate attempt", got)
	}
}

func TestReserveRequiresCalendarSession(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	gateway.loggedOut = true
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	_, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID: class.ClassID, StudentID: student.StudentID, Amount: 100,
	})
	if !errors.Is(err, calendar.ErrLoginRequired) {
		t.Fatalf("got %v, want ErrLoginRequired", err)
	}
}

func TestReserveAttendeeFailureLeavesNoRows(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	seedEvent(gateway, class)
	gateway.addErr = &calendar.Error{Op: "attendees", EventID: class.EventID, Err: errors.New("api down")}
	svc := NewReservationService(store.repo(), gateway, testLogger)

	_, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID: class.ClassID, StudentID: student.StudentID, Amount: 100,
	})
	if err == nil {
		t.Fatal("expected error when attendee add fails")
	}
	if len(store.reservations) != 0 || len(store.invoices) != 0 {
		t.Fatalf("rows written despite calendar failure: reservations=%d invoices=%d",
			len(store.reservations), len(store.invoices))
	}
}

func TestCancelRemovesSeatAttendeeAndPairInvoiceOnly(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	other := seedClass2(store, teacher.TeacherID)
	seedEvent(gateway, class)
	seedEvent(gateway, other)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	for _, c := range []string{class.ClassID, other.ClassID} {
		if _, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
			ClassID: c, StudentID: student.StudentID, Amount: 100,
		}); err != nil {
			t.Fatalf("Reserve %s: %v", c, err)
		}
	}

	if err := svc.Cancel(context.Background(), &dto.CancelReservationRequest{
		ClassID: class.ClassID, StudentID: student.StudentID,
	}); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if got := len(store.rosterOf(class.ClassID)); got != 0 {
		t.Fatalf("roster size %d after cancel, want 0", got)
	}
	if got := len(gateway.events[class.EventID].attendees); got != 0 {
		t.Fatalf("attendees %d after cancel, want 0", got)
	}
	if got := len(store.invoicesFor(student.StudentID, class.ClassID)); got != 0 {
		t.Fatalf("pair invoices %d after cancel, want 0", got)
	}
	// Billing for the student's other class is untouched.
	if got := len(store.invoicesFor(student.StudentID, other.ClassID)); got != 1 {
		t.Fatalf("unrelated invoices %d after cancel, want 1", got)
	}
}

func TestCancelWithoutReservationRejected(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	err := svc.Cancel(context.Background(), &dto.CancelReservationRequest{
		ClassID: class.ClassID, StudentID: student.StudentID,
	})
	if !errors.Is(err, ErrNotReserved) {
		t.Fatalf("got %v, want ErrNotReserved", err)
	}
}

func TestCapacityFreesSeatAfterCancel(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	a := seedStudent(store, "a@school.test")
	b := seedStudent(store, "b@school.test")
	c := seedStudent(store, "c@school.test")
	class := seedClass(store, teacher.TeacherID, 2)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	reserve := func(studentID string) error {
		_, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
			ClassID: class.ClassID, StudentID: studentID, Amount: 100,
		})
		return err
	}

	if err := reserve(a.StudentID); err != nil {
		t.Fatalf("reserve a: %v", err)
	}
	if err := reserve(b.StudentID); err != nil {
		t.Fatalf("reserve b: %v", err)
	}
	if err := reserve(c.StudentID); !errors.Is(err, ErrClassFull) {
		t.Fatalf("reserve c into full class: got %v, want ErrClassFull", err)
	}

	if err := svc.Cancel(context.Background(), &dto.CancelReservationRequest{
		ClassID: class.ClassID, StudentID: b.StudentID,
	}); err != nil {
		t.Fatalf("cancel b: %v", err)
	}

	if err := reserve(c.StudentID); err != nil {
		t.Fatalf("reserve c after seat freed: %v", err)
	}

	roster := store.rosterOf(class.ClassID)
	emails := make([]string, 0, len(roster))
	for _, s := range roster {
		emails = append(emails, s.Email)
	}
	joined := strings.Join(emails, ",")
	if len(roster) != 2 || !strings.Contains(joined, a.Email) || !strings.Contains(joined, c.Email) {
		t.Fatalf("final roster %v, want a and c", emails)
	}
}

func TestRosterAndStudentClasses(t *testing.T) {
	store := newMemStore()
	gateway := newFakeGateway()
	teacher := seedTeacher(store, 20)
	student := seedStudent(store, "ivan@school.test")
	class := seedClass(store, teacher.TeacherID, 5)
	seedEvent(gateway, class)
	svc := NewReservationService(store.repo(), gateway, testLogger)

	if _, err := svc.Reserve(context.Background(), &dto.CreateReservationRequest{
		ClassID: class.ClassID, StudentID: student.StudentID, Amount: 100,
	}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	roster, err := svc.Roster(context.Background(), class.ClassID)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(roster.Students) != 1 || roster.Students[0].Email != student.Email {
		t.Fatalf("roster %+v, want the reserved student", roster.Students)
	}

	classes, err := svc.StudentClasses(context.Background(), student.StudentID)
	if err != nil {
		t.Fatalf("StudentClasses: %v", err)
	}
	if len(classes) != 1 || classes[0].ID != class.ClassID {
		t.Fatalf("student classes %+v, want the reserved class", classes)
	}
}
