package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// PaycheckFilter narrows paycheck listings. Nil/zero fields are ignored;
// the date range applies only when both ends are set.
type PaycheckFilter struct {
	TeacherID string
	Paid      *bool
	StartDate *time.Time
	EndDate   *time.Time
}

// PaycheckRepository is the paycheck data-access interface.
type PaycheckRepository interface {
	Create(ctx context.Context, paycheck *model.Paycheck) error
	GetByID(ctx context.Context, id string) (*model.Paycheck, error)
	ExistsForPeriod(ctx context.Context, teacherID string, start, end time.Time) (bool, error)
	List(ctx context.Context, filter PaycheckFilter, offset, limit int) ([]model.Paycheck, int64, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]model.Paycheck, error)
	Update(ctx context.Context, paycheck *model.Paycheck) error
}

type paycheckRepo struct {
	db *gorm.DB
}

// NewPaycheckRepo creates the GORM-backed PaycheckRepository.
func NewPaycheckRepo(db *gorm.DB) PaycheckRepository {
	return &paycheckRepo{db: db}
}

func (r *paycheckRepo) Create(ctx context.Context, paycheck *model.Paycheck) error {
	return r.db.WithContext(ctx).Create(paycheck).Error
}

func (r *paycheckRepo) GetByID(ctx context.Context, id string) (*model.Paycheck, error) {
	var paycheck model.Paycheck
	err := r.db.WithContext(ctx).
		Where("paycheck_id = ?", id).
		First(&paycheck).Error
	if err != nil {
		return nil, err
	}
	return &paycheck, nil
}

func (r *paycheckRepo) ExistsForPeriod(ctx context.Context, teacherID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Paycheck{}).
		Where("teacher_id = ? AND period_start = ? AND period_end = ?",
			teacherID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *paycheckRepo) List(ctx context.Context, filter PaycheckFilter, offset, limit int) ([]model.Paycheck, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Paycheck{})
	if filter.TeacherID != "" {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Paid != nil {
		q = q.Where("paid = ?", *filter.Paid)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("period_start >= ? AND period_end <= ?",
			filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paychecks []model.Paycheck
	err := q.Offset(offset).Limit(limit).Order("period_start DESC").Find(&paychecks).Error
	return paychecks, total, err
}

func (r *paycheckRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]model.Paycheck, error) {
	var paychecks []model.Paycheck
	err := r.db.WithContext(ctx).
		Where("period_start >= ? AND period_end <= ?",
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("period_start").
		Find(&paychecks).Error
	return paychecks, err
}

func (r *paycheckRepo) Update(ctx context.Context, paycheck *model.Paycheck) error {
	return r.db.WithContext(ctx).Save(paycheck).Error
}
