package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/model"
	"schoolsync/backend/internal/repository"
)

// ── class module errors ──

var (
	ErrClassNotFound       = errors.New("class not found")
	ErrClassExists         = errors.New("class with that name and time already exists")
	ErrClassTeacherMissing = errors.New("teacher for class not found")
)

// ClassService owns the class lifecycle. Every state change goes through
// the calendar first: the row is only written once the event call has
// succeeded, and a calendar failure aborts the whole operation.
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context, req *dto.ListClassesRequest) ([]dto.ClassResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string) error
	// ExportFeed renders every class as an iCalendar feed for subscription.
	ExportFeed(ctx context.Context) (string, error)
}

type classService struct {
	repo    *repository.Repository
	gateway calendar.Gateway
	logger  *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, gateway calendar.Gateway, logger *zap.Logger) ClassService {
	return &classService{repo: repo, gateway: gateway, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	if err := s.gateway.EnsureSession(ctx); err != nil {
		return nil, err
	}

	exists, err := s.repo.Class.ExistsByNameAndTime(ctx, req.Name, req.StartsAt, req.EndsAt)
	if err != nil {
		s.logger.Error("class uniqueness check failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrClassExists
	}

	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassTeacherMissing
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	frequency := req.Frequency.ToModel()

	// Calendar first. No row is written unless the event is confirmed.
	eventID, err := s.gateway.CreateEvent(ctx, calendar.EventRequest{
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Description: req.Description,
		Frequency:   frequency,
	})
	if err != nil {
		s.logger.Error("calendar event creation failed",
			zap.String("class_name", req.Name),
			zap.Error(err),
		)
		return nil, err
	}

	class := &model.Class{
		Name:        req.Name,
		TeacherID:   req.TeacherID,
		Capacity:    req.Capacity,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Description: req.Description,
		Frequency:   frequency,
		EventID:     eventID,
	}
	if err := s.repo.Class.Create(ctx, class); err != nil {
		// The event exists but the row does not; log enough for
		// reconciliation to find the orphan.
		s.logger.Error("class row insert failed after calendar create",
			zap.String("event_id", eventID),
			zap.String("class_name", req.Name),
			zap.Error(err),
		)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClassExists
		}
		return nil, err
	}

	s.logger.Info("class created",
		zap.String("class_id", class.ClassID),
		zap.String("event_id", eventID),
	)

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

func (s *classService) List(ctx context.Context, req *dto.ListClassesRequest) ([]dto.ClassResponse, int64, error) {
	date, err := req.ParseDate()
	if err != nil {
		return nil, 0, err
	}

	classes, total, err := s.repo.Class.List(ctx, repository.ClassFilter{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("class listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, dto.NewClassResponse(&classes[i]))
	}
	return result, total, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	if err := s.gateway.EnsureSession(ctx); err != nil {
		return nil, err
	}

	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	if req.StartsAt != nil {
		class.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		class.EndsAt = *req.EndsAt
	}
	if req.Description != nil {
		class.Description = *req.Description
	}

	// The stored recurrence is reused; it is not editable through update.
	err = s.gateway.UpdateEvent(ctx, class.EventID, calendar.EventRequest{
		Name:        class.Name,
		StartsAt:    class.StartsAt,
		EndsAt:      class.EndsAt,
		Description: class.Description,
		Frequency:   class.Frequency,
	})
	if err != nil {
		s.logger.Error("calendar event update failed",
			zap.String("class_id", id),
			zap.String("event_id", class.EventID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("class row update failed after calendar update",
			zap.String("class_id", id),
			zap.String("event_id", class.EventID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := dto.NewClassResponse(class)
	return &resp, nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.EnsureSession(ctx); err != nil {
		return err
	}

	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return err
	}

	// Calendar delete first. When it fails the row stays, so there is
	// never a local class pointing at nothing while the event lives on.
	if err := s.gateway.DeleteEvent(ctx, class.EventID); err != nil {
		s.logger.Error("calendar event delete failed",
			zap.String("class_id", id),
			zap.String("event_id", class.EventID),
			zap.Error(err),
		)
		return err
	}

	if err := s.repo.Class.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("class cascade delete failed after calendar delete",
			zap.String("class_id", id),
			zap.String("event_id", class.EventID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("class deleted",
		zap.String("class_id", id),
		zap.String("event_id", class.EventID),
	)
	return nil
}
