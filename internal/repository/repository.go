package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrClassFull is returned by ReservationRepository.ReserveSeat when the
// roster already holds capacity students. It is raised inside the locked
// transaction, so two concurrent reservations cannot both pass the check.
var ErrClassFull = errors.New("class is at capacity")

// Repository aggregates all data-access interfaces.
type Repository struct {
	Student     StudentRepository
	Teacher     TeacherRepository
	Class       ClassRepository
	Reservation ReservationRepository
	Invoice     InvoiceRepository
	WorkHour    WorkHourRepository
	Paycheck    PaycheckRepository
}

// NewRepository wires the GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:     NewStudentRepo(db),
		Teacher:     NewTeacherRepo(db),
		Class:       NewClassRepo(db),
		Reservation: NewReservationRepo(db),
		Invoice:     NewInvoiceRepo(db),
		WorkHour:    NewWorkHourRepo(db),
		Paycheck:    NewPaycheckRepo(db),
	}
}
