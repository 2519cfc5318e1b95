package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// StudentFilter narrows student listings. Empty fields are ignored.
type StudentFilter struct {
	LastName string
	Email    string
	Phone    string
}

// StudentRepository is the student data-access interface.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetWithClasses(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) (int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates the GORM-backed StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetWithClasses(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Classes").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Student{})
	if filter.LastName != "" {
		q = q.Where("last_name = ?", filter.LastName)
	}
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	if filter.Phone != "" {
		q = q.Where("phone = ?", filter.Phone)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.Student
	err := q.Offset(offset).Limit(limit).Order("last_name, first_name").Find(&students).Error
	return students, total, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{})
	return result.RowsAffected, result.Error
}
