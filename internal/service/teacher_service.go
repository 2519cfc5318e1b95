package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/model"
	"schoolsync/backend/internal/repository"
)

// ── teacher module errors ──

var (
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrTeacherExists   = errors.New("teacher with that email already exists")
)

// TeacherService handles the teacher roster.
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, req *dto.ListTeachersRequest) ([]dto.TeacherResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id string) error
	// Classes returns the classes taught by one teacher.
	Classes(ctx context.Context, id string) ([]dto.ClassResponse, error)
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService creates a TeacherService.
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	hireDate, err := req.ParseHireDate()
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Hourly:    req.Hourly,
		HireDate:  hireDate,
	}
	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherExists
		}
		s.logger.Error("teacher insert failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

func (s *teacherService) List(ctx context.Context, req *dto.ListTeachersRequest) ([]dto.TeacherResponse, int64, error) {
	teachers, total, err := s.repo.Teacher.List(ctx, repository.TeacherFilter{
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("teacher listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, dto.NewTeacherResponse(&teachers[i]))
	}
	return result, total, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.Hourly != nil {
		teacher.Hourly = *req.Hourly
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherExists
		}
		s.logger.Error("teacher update failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewTeacherResponse(teacher)
	return &resp, nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Teacher.Delete(ctx, id)
	if err != nil {
		s.logger.Error("teacher delete failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrTeacherNotFound
	}
	return nil
}

func (s *teacherService) Classes(ctx context.Context, id string) ([]dto.ClassResponse, error) {
	teacher, err := s.repo.Teacher.GetWithClasses(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassResponse, 0, len(teacher.Classes))
	for i := range teacher.Classes {
		result = append(result, dto.NewClassResponse(&teacher.Classes[i]))
	}
	return result, nil
}
