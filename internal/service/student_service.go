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

// ── student module errors ──

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student with that email already exists")
)

// StudentService handles the student roster.
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.ListStudentsRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := &model.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		ParentPhone: req.ParentPhone,
		BirthYear:   req.BirthYear,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("student insert failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) List(ctx context.Context, req *dto.ListStudentsRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, repository.StudentFilter{
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("student listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, dto.NewStudentResponse(&students[i]))
	}
	return result, total, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.ParentPhone != nil {
		student.ParentPhone = req.ParentPhone
	}
	if req.BirthYear != nil {
		student.BirthYear = *req.BirthYear
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("student update failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Student.Delete(ctx, id)
	if err != nil {
		s.logger.Error("student delete failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrStudentNotFound
	}
	return nil
}
