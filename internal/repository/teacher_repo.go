package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// TeacherFilter narrows teacher listings. Empty fields are ignored.
type TeacherFilter struct {
	LastName string
	Email    string
	Phone    string
}

// TeacherRepository is the teacher data-access interface.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetWithClasses(ctx context.Context, id string) (*model.Teacher, error)
	List(ctx context.Context, filter TeacherFilter, offset, limit int) ([]model.Teacher, int64, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id string) (int64, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates the GORM-backed TeacherRepository.
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetWithClasses(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Classes").
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context, filter TeacherFilter, offset, limit int) ([]model.Teacher, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Teacher{})
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

	var teachers []model.Teacher
	err := q.Offset(offset).Limit(limit).Order("last_name, first_name").Find(&teachers).Error
	return teachers, total, err
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		Delete(&model.Teacher{})
	return result.RowsAffected, result.Error
}
