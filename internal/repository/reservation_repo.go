package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolsync/backend/internal/model"
)

// ReservationRepository is the seat-assignment data-access interface.
type ReservationRepository interface {
	Exists(ctx context.Context, studentID, classID string) (bool, error)
	// ReserveSeat inserts the join row inside a transaction that holds a
	// row lock on the class, re-checking capacity under the lock. Returns
	// ErrClassFull when the roster is already at capacity.
	ReserveSeat(ctx context.Context, classID, studentID string) error
	// CancelSeat removes the join row(s) for (student, class) and the
	// invoices scoped to that same pair, in one transaction. Returns the
	// number of reservations removed.
	CancelSeat(ctx context.Context, classID, studentID string) (int64, error)
}

type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepo creates the GORM-backed ReservationRepository.
func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Exists(ctx context.Context, studentID, classID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Count(&count).Error
	return count > 0, err
}

func (r *reservationRepo) ReserveSeat(ctx context.Context, classID, studentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class model.Class
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_id = ?", classID).
			First(&class).Error; err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&model.Reservation{}).
			Where("class_id = ?", classID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken >= int64(class.Capacity) {
			return ErrClassFull
		}

		return tx.Create(&model.Reservation{
			StudentID: studentID,
			ClassID:   classID,
		}).Error
	})
}

func (r *reservationRepo) CancelSeat(ctx context.Context, classID, studentID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("student_id = ? AND class_id = ?", studentID, classID).
			Delete(&model.Reservation{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Where("student_id = ? AND class_id = ?", studentID, classID).
			Delete(&model.Invoice{}).Error
	})
	return removed, err
}
