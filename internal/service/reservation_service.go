package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/model"
	"schoolsync/backend/internal/repository"
)

// ── reservation module errors ──

var (
	ErrClassFull       = errors.New("class is at capacity")
	ErrAlreadyReserved = errors.New("student already reserved this class")
	ErrNotReserved     = errors.New("student has no reservation for this class")
)

// ReservationService books and cancels seats. A reservation is three
// facts kept in step: the join row, the calendar attendee, and exactly
// one invoice for the pair.
type ReservationService interface {
	// Reserve books the seat and returns the class with its new roster.
	Reserve(ctx context.Context, req *dto.CreateReservationRequest) (*dto.ClassWithRosterResponse, error)
	Cancel(ctx context.Context, req *dto.CancelReservationRequest) error
	Roster(ctx context.Context, classID string) (*dto.ClassWithRosterResponse, error)
	StudentClasses(ctx context.Context, studentID string) ([]dto.ClassResponse, error)
}

type reservationService struct {
	repo    *repository.Repository
	gateway calendar.Gateway
	logger  *zap.Logger
}

// NewReservationService creates a ReservationService.
func NewReservationService(repo *repository.Repository, gateway calendar.Gateway, logger *zap.Logger) ReservationService {
	return &reservationService{repo: repo, gateway: gateway, logger: logger}
}

func (s *reservationService) Reserve(ctx context.Context, req *dto.CreateReservationRequest) (*dto.ClassWithRosterResponse, error) {
	if err := s.gateway.EnsureSession(ctx); err != nil {
		return nil, err
	}

	class, err := s.repo.Class.GetWithStudents(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return nil, err
	}

	// Cheap pre-check before touching the calendar; the repository
	// re-checks under a row lock when the seat is actually taken.
	if len(class.Students) >= class.Capacity {
		return nil, ErrClassFull
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return nil, err
	}

	reserved, err := s.repo.Reservation.Exists(ctx, req.StudentID, req.ClassID)
	if err != nil {
		s.logger.Error("reservation check failed", zap.Error(err))
		return nil, err
	}
	if reserved {
		return nil, ErrAlreadyReserved
	}

	if _, err := s.gateway.AddAttendee(ctx, class.EventID, student.Email); err != nil {
		s.logger.Error("attendee add failed",
			zap.String("event_id", class.EventID),
			zap.String("email", student.Email),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Reservation.ReserveSeat(ctx, req.ClassID, req.StudentID); err != nil {
		// The attendee is already on the event; roll it back so the
		// calendar does not drift from the roster.
		if _, rbErr := s.gateway.RemoveAttendee(ctx, class.EventID, student.Email); rbErr != nil {
			s.logger.Error("attendee rollback failed",
				zap.String("event_id", class.EventID),
				zap.String("email", student.Email),
				zap.Error(rbErr),
			)
		}
		if errors.Is(err, repository.ErrClassFull) {
			return nil, ErrClassFull
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReserved
		}
		s.logger.Error("seat reservation failed", zap.Error(err))
		return nil, err
	}

	classID := class.ClassID
	invoice := &model.Invoice{
		StudentID: student.StudentID,
		ClassID:   &classID,
		IssuedOn:  todayUTC(),
		Description: fmt.Sprintf("Reservation for: %s, at %s, Class description: %s",
			class.Name, class.StartsAt.Format(time.RFC3339), class.Description),
		Amount: req.Amount,
	}
	if err := s.repo.Invoice.Create(ctx, invoice); err != nil {
		s.logger.Error("invoice insert failed after reservation",
			zap.String("class_id", classID),
			zap.String("student_id", student.StudentID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("seat reserved",
		zap.String("class_id", classID),
		zap.String("student_id", student.StudentID),
		zap.String("invoice_id", invoice.InvoiceID),
	)

	updated, err := s.repo.Class.GetWithStudents(ctx, classID)
	if err != nil {
		s.logger.Error("roster reload failed", zap.Error(err))
		return nil, err
	}
	resp := dto.NewClassWithRosterResponse(updated)
	return &resp, nil
}

func (s *reservationService) Cancel(ctx context.Context, req *dto.CancelReservationRequest) error {
	if err := s.gateway.EnsureSession(ctx); err != nil {
		return err
	}

	class, err := s.repo.Class.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return err
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return err
	}

	reserved, err := s.repo.Reservation.Exists(ctx, req.StudentID, req.ClassID)
	if err != nil {
		s.logger.Error("reservation check failed", zap.Error(err))
		return err
	}
	if !reserved {
		return ErrNotReserved
	}

	if _, err := s.gateway.RemoveAttendee(ctx, class.EventID, student.Email); err != nil {
		s.logger.Error("attendee remove failed",
			zap.String("event_id", class.EventID),
			zap.String("email", student.Email),
			zap.Error(err),
		)
		return err
	}

	removed, err := s.repo.Reservation.CancelSeat(ctx, req.ClassID, req.StudentID)
	if err != nil {
		s.logger.Error("seat cancellation failed after attendee removal",
			zap.String("class_id", req.ClassID),
			zap.String("student_id", req.StudentID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("seat cancelled",
		zap.String("class_id", req.ClassID),
		zap.String("student_id", req.StudentID),
		zap.Int64("reservations_removed", removed),
	)
	return nil
}

func (s *reservationService) Roster(ctx context.Context, classID string) (*dto.ClassWithRosterResponse, error) {
	class, err := s.repo.Class.GetWithStudents(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewClassWithRosterResponse(class)
	return &resp, nil
}

func (s *reservationService) StudentClasses(ctx context.Context, studentID string) ([]dto.ClassResponse, error) {
	student, err := s.repo.Student.GetWithClasses(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassResponse, 0, len(student.Classes))
	for i := range student.Classes {
		result = append(result, dto.NewClassResponse(&student.Classes[i]))
	}
	return result, nil
}

// todayUTC is the current calendar day at midnight UTC, the grain used
// for issued_on and work dates.
func todayUTC() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
