package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// ClassFilter narrows class listings. Name and Description match as
// case-insensitive substrings; Date matches the calendar day of the start.
type ClassFilter struct {
	Name        string
	Date        *time.Time
	Description string
}

// ClassRepository is the class data-access interface.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	GetWithStudents(ctx context.Context, id string) (*model.Class, error)
	ExistsByNameAndTime(ctx context.Context, name string, startsAt, endsAt time.Time) (bool, error)
	List(ctx context.Context, filter ClassFilter, offset, limit int) ([]model.Class, int64, error)
	ListAll(ctx context.Context) ([]model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	// DeleteCascade removes the class row together with every invoice and
	// reservation referencing it, in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates the GORM-backed ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetWithStudents(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Students").
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ExistsByNameAndTime(ctx context.Context, name string, startsAt, endsAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("name = ? AND starts_at = ? AND ends_at = ?", name, startsAt, endsAt).
		Count(&count).Error
	return count > 0, err
}

func (r *classRepo) List(ctx context.Context, filter ClassFilter, offset, limit int) ([]model.Class, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Class{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Date != nil {
		q = q.Where("DATE(starts_at) = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Description != "" {
		q = q.Where("description ILIKE ?", "%"+filter.Description+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []model.Class
	err := q.Offset(offset).Limit(limit).Order("starts_at").Find(&classes).Error
	return classes, total, err
}

func (r *classRepo) ListAll(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).Order("starts_at").Find(&classes).Error
	return classes, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&model.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&model.Reservation{}).Error; err != nil {
			return err
		}
		return tx.Where("class_id = ?", id).Delete(&model.Class{}).Error
	})
}
