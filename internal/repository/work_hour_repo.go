package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
)

// WorkHourFilter narrows work-hour listings. Zero fields are ignored; the
// date range applies only when both ends are set.
type WorkHourFilter struct {
	TeacherID string
	StartDate *time.Time
	EndDate   *time.Time
}

// WorkHourRepository is the work-hour-log data-access interface.
type WorkHourRepository interface {
	Create(ctx context.Context, log *model.WorkHourLog) error
	// ExistsExact reports whether an identical (teacher, date, hours) row
	// exists. Same teacher and date with different hours is not a match.
	ExistsExact(ctx context.Context, teacherID string, workDate time.Time, hours float64) (bool, error)
	ListInRange(ctx context.Context, teacherID string, start, end time.Time) ([]model.WorkHourLog, error)
	List(ctx context.Context, filter WorkHourFilter, offset, limit int) ([]model.WorkHourLog, int64, error)
}

type workHourRepo struct {
	db *gorm.DB
}

// NewWorkHourRepo creates the GORM-backed WorkHourRepository.
func NewWorkHourRepo(db *gorm.DB) WorkHourRepository {
	return &workHourRepo{db: db}
}

func (r *workHourRepo) Create(ctx context.Context, log *model.WorkHourLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workHourRepo) ExistsExact(ctx context.Context, teacherID string, workDate time.Time, hours float64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WorkHourLog{}).
		Where("teacher_id = ? AND work_date = ? AND hours = ?",
			teacherID, workDate.Format("2006-01-02"), hours).
		Count(&count).Error
	return count > 0, err
}

func (r *workHourRepo) ListInRange(ctx context.Context, teacherID string, start, end time.Time) ([]model.WorkHourLog, error) {
	var logs []model.WorkHourLog
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND work_date BETWEEN ? AND ?",
			teacherID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("work_date").
		Find(&logs).Error
	return logs, err
}

func (r *workHourRepo) List(ctx context.Context, filter WorkHourFilter, offset, limit int) ([]model.WorkHourLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.WorkHourLog{})
	if filter.TeacherID != "" {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("work_date BETWEEN ? AND ?",
			filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.WorkHourLog
	err := q.Offset(offset).Limit(limit).Order("work_date").Find(&logs).Error
	return logs, total, err
}
