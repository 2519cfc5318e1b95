package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolsync/backend/internal/model"
	"schoolsync/backend/internal/repository"
)

// memStore is a shared in-memory backing for all repository mocks, so
// roster preloads and cascade deletes behave like the real schema.
type memStore struct {
	students     map[string]model.Student
	teachers     map[string]model.Teacher
	classes      map[string]model.Class
	reservations []model.Reservation
	invoices     map[string]model.Invoice
	workHours    []model.WorkHourLog
	paychecks    map[string]model.Paycheck
}

func newMemStore() *memStore {
	return &memStore{
		students:  make(map[string]model.Student),
		teachers:  make(map[string]model.Teacher),
		classes:   make(map[string]model.Class),
		invoices:  make(map[string]model.Invoice),
		paychecks: make(map[string]model.Paycheck),
	}
}

func (s *memStore) repo() *repository.Repository {
	return &repository.Repository{
		Student:     &memStudentRepo{s},
		Teacher:     &memTeacherRepo{s},
		Class:       &memClassRepo{s},
		Reservation: &memReservationRepo{s},
		Invoice:     &memInvoiceRepo{s},
		WorkHour:    &memWorkHourRepo{s},
		Paycheck:    &memPaycheckRepo{s},
	}
}

func (s *memStore) rosterOf(classID string) []model.Student {
	var roster []model.Student
	for _, r := range s.reservations {
		if r.ClassID == classID {
			roster = append(roster, s.students[r.StudentID])
		}
	}
	return roster
}

func (s *memStore) invoicesFor(studentID, classID string) []model.Invoice {
	var out []model.Invoice
	for _, inv := range s.invoices {
		if inv.StudentID == studentID && inv.ClassID != nil && *inv.ClassID == classID {
			out = append(out, inv)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// ── students ──

type memStudentRepo struct{ s *memStore }

func (r *memStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, existing := range r.s.students {
		if strings.EqualFold(existing.Email, student.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = uuid.New().String()
	}
	r.s.students[student.StudentID] = *student
	return nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	student, ok := r.s.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &student, nil
}

func (r *memStudentRepo) GetWithClasses(_ context.Context, id string) (*model.Student, error) {
	student, ok := r.s.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, res := range r.s.reservations {
		if res.StudentID == id {
			student.Classes = append(student.Classes, r.s.classes[res.ClassID])
		}
	}
	return &student, nil
}

func (r *memStudentRepo) List(_ context.Context, filter repository.StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	var out []model.Student
	for _, student := range r.s.students {
		if filter.LastName != "" && student.LastName != filter.LastName {
			continue
		}
		if filter.Email != "" && student.Email != filter.Email {
			continue
		}
		if filter.Phone != "" && student.Phone != filter.Phone {
			continue
		}
		out = append(out, student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *memStudentRepo) Update(_ context.Context, student *model.Student) error {
	if _, ok := r.s.students[student.StudentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.students[student.StudentID] = *student
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.s.students[id]; !ok {
		return 0, nil
	}
	delete(r.s.students, id)
	return 1, nil
}

// ── teachers ──

type memTeacherRepo struct{ s *memStore }

func (r *memTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	for _, existing := range r.s.teachers {
		if strings.EqualFold(existing.Email, teacher.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if teacher.TeacherID == "" {
		teacher.TeacherID = uuid.New().String()
	}
	r.s.teachers[teacher.TeacherID] = *teacher
	return nil
}

func (r *memTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	teacher, ok := r.s.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &teacher, nil
}

func (r *memTeacherRepo) GetWithClasses(_ context.Context, id string) (*model.Teacher, error) {
	teacher, ok := r.s.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, class := range r.s.classes {
		if class.TeacherID == id {
			teacher.Classes = append(teacher.Classes, class)
		}
	}
	return &teacher, nil
}

func (r *memTeacherRepo) List(_ context.Context, filter repository.TeacherFilter, offset, limit int) ([]model.Teacher, int64, error) {
	var out []model.Teacher
	for _, teacher := range r.s.teachers {
		if filter.LastName != "" && teacher.LastName != filter.LastName {
			continue
		}
		if filter.Email != "" && teacher.Email != filter.Email {
			continue
		}
		if filter.Phone != "" && teacher.Phone != filter.Phone {
			continue
		}
		out = append(out, teacher)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *memTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	if _, ok := r.s.teachers[teacher.TeacherID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.teachers[teacher.TeacherID] = *teacher
	return nil
}

func (r *memTeacherRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.s.teachers[id]; !ok {
		return 0, nil
	}
	delete(r.s.teachers, id)
	return 1, nil
}

// ── classes ──

type memClassRepo struct{ s *memStore }

func (r *memClassRepo) Create(_ context.Context, class *model.Class) error {
	for _, existing := range r.s.classes {
		if existing.Name == class.Name &&
			existing.StartsAt.Equal(class.StartsAt) &&
			existing.EndsAt.Equal(class.EndsAt) {
			return gorm.ErrDuplicatedKey
		}
	}
	if class.ClassID == "" {
		class.ClassID = uuid.New().String()
	}
	r.s.classes[class.ClassID] = *class
	return nil
}

func (r *memClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	class, ok := r.s.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &class, nil
}

func (r *memClassRepo) GetWithStudents(_ context.Context, id string) (*model.Class, error) {
	class, ok := r.s.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	class.Students = r.s.rosterOf(id)
	return &class, nil
}

func (r *memClassRepo) ExistsByNameAndTime(_ context.Context, name string, startsAt, endsAt time.Time) (bool, error) {
	for _, class := range r.s.classes {
		if class.Name == name && class.StartsAt.Equal(startsAt) && class.EndsAt.Equal(endsAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memClassRepo) List(_ context.Context, filter repository.ClassFilter, offset, limit int) ([]model.Class, int64, error) {
	var out []model.Class
	for _, class := range r.s.classes {
		if filter.Name != "" && !strings.Contains(strings.ToLower(class.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Date != nil && !sameDay(class.StartsAt, *filter.Date) {
			continue
		}
		if filter.Description != "" && !strings.Contains(strings.ToLower(class.Description), strings.ToLower(filter.Description)) {
			continue
		}
		out = append(out, class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *memClassRepo) ListAll(_ context.Context) ([]model.Class, error) {
	var out []model.Class
	for _, class := range r.s.classes {
		out = append(out, class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *memClassRepo) Update(_ context.Context, class *model.Class) error {
	if _, ok := r.s.classes[class.ClassID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.classes[class.ClassID] = *class
	return nil
}

func (r *memClassRepo) DeleteCascade(_ context.Context, id string) error {
	for invID, inv := range r.s.invoices {
		if inv.ClassID != nil && *inv.ClassID == id {
			delete(r.s.invoices, invID)
		}
	}
	kept := r.s.reservations[:0]
	for _, res := range r.s.reservations {
		if res.ClassID != id {
			kept = append(kept, res)
		}
	}
	r.s.reservations = kept
	delete(r.s.classes, id)
	return nil
}

// ── reservations ──

type memReservationRepo struct{ s *memStore }

func (r *memReservationRepo) Exists(_ context.Context, studentID, classID string) (bool, error) {
	for _, res := range r.s.reservations {
		if res.StudentID == studentID && res.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReservationRepo) ReserveSeat(_ context.Context, classID, studentID string) error {
	class, ok := r.s.classes[classID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	taken := 0
	for _, res := range r.s.reservations {
		if res.ClassID == classID {
			taken++
		}
		if res.ClassID == classID && res.StudentID == studentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if taken >= class.Capacity {
		return repository.ErrClassFull
	}
	r.s.reservations = append(r.s.reservations, model.Reservation{
		StudentID: studentID,
		ClassID:   classID,
	})
	return nil
}

func (r *memReservationRepo) CancelSeat(_ context.Context, classID, studentID string) (int64, error) {
	var removed int64
	kept := r.s.reservations[:0]
	for _, res := range r.s.reservations {
		if res.StudentID == studentID && res.ClassID == classID {
			removed++
			continue
		}
		kept = append(kept, res)
	}
	r.s.reservations = kept

	for invID, inv := range r.s.invoices {
		if inv.StudentID == studentID && inv.ClassID != nil && *inv.ClassID == classID {
			delete(r.s.invoices, invID)
		}
	}
	return removed, nil
}

// ── invoices ──

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(_ context.Context, invoice *model.Invoice) error {
	if invoice.InvoiceID == "" {
		invoice.InvoiceID = uuid.New().String()
	}
	r.s.invoices[invoice.InvoiceID] = *invoice
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*model.Invoice, error) {
	invoice, ok := r.s.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &invoice, nil
}

func (r *memInvoiceRepo) GetWithStudent(_ context.Context, id string) (*model.Invoice, error) {
	invoice, ok := r.s.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if student, ok := r.s.students[invoice.StudentID]; ok {
		invoice.Student = &student
	}
	return &invoice, nil
}

func (r *memInvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter, offset, limit int) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.s.invoices {
		if filter.Paid != nil && inv.Paid != *filter.Paid {
			continue
		}
		if filter.IssuedOn != nil && !sameDay(inv.IssuedOn, *filter.IssuedOn) {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceID < out[j].InvoiceID })
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *memInvoiceRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.s.invoices {
		if inv.IssuedOn.Before(start) || inv.IssuedOn.After(end) {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedOn.Before(out[j].IssuedOn) })
	return out, nil
}

func (r *memInvoiceRepo) Update(_ context.Context, invoice *model.Invoice) error {
	if _, ok := r.s.invoices[invoice.InvoiceID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.invoices[invoice.InvoiceID] = *invoice
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.s.invoices[id]; !ok {
		return 0, nil
	}
	delete(r.s.invoices, id)
	return 1, nil
}

// ── work hours ──

type memWorkHourRepo struct{ s *memStore }

func (r *memWorkHourRepo) Create(_ context.Context, log *model.WorkHourLog) error {
	for _, existing := range r.s.workHours {
		if existing.TeacherID == log.TeacherID &&
			sameDay(existing.WorkDate, log.WorkDate) &&
			existing.Hours == log.Hours {
			return gorm.ErrDuplicatedKey
		}
	}
	if log.WorkHourLogID == "" {
		log.WorkHourLogID = uuid.New().String()
	}
	r.s.workHours = append(r.s.workHours, *log)
	return nil
}

func (r *memWorkHourRepo) ExistsExact(_ context.Context, teacherID string, workDate time.Time, hours float64) (bool, error) {
	for _, log := range r.s.workHours {
		if log.TeacherID == teacherID && sameDay(log.WorkDate, workDate) && log.Hours == hours {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWorkHourRepo) ListInRange(_ context.Context, teacherID string, start, end time.Time) ([]model.WorkHourLog, error) {
	var out []model.WorkHourLog
	for _, log := range r.s.workHours {
		if log.TeacherID != teacherID {
			continue
		}
		if log.WorkDate.Before(start) || log.WorkDate.After(end) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (r *memWorkHourRepo) List(_ context.Context, filter repository.WorkHourFilter, offset, limit int) ([]model.WorkHourLog, int64, error) {
	var out []model.WorkHourLog
	for _, log := range r.s.workHours {
		if filter.TeacherID != "" && log.TeacherID != filter.TeacherID {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if log.WorkDate.Before(*filter.StartDate) || log.WorkDate.After(*filter.EndDate) {
				continue
			}
		}
		out = append(out, log)
	}
	return page(out, offset, limit), int64(len(out)), nil
}

// ── paychecks ──

type memPaycheckRepo struct{ s *memStore }

func (r *memPaycheckRepo) Create(_ context.Context, paycheck *model.Paycheck) error {
	for _, existing := range r.s.paychecks {
		if existing.TeacherID == paycheck.TeacherID &&
			sameDay(existing.PeriodStart, paycheck.PeriodStart) &&
			sameDay(existing.PeriodEnd, paycheck.PeriodEnd) {
			return gorm.ErrDuplicatedKey
		}
	}
	if paycheck.PaycheckID == "" {
		paycheck.PaycheckID = uuid.New().String()
	}
	r.s.paychecks[paycheck.PaycheckID] = *paycheck
	return nil
}

func (r *memPaycheckRepo) GetByID(_ context.Context, id string) (*model.Paycheck, error) {
	paycheck, ok := r.s.paychecks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &paycheck, nil
}

func (r *memPaycheckRepo) ExistsForPeriod(_ context.Context, teacherID string, start, end time.Time) (bool, error) {
	for _, paycheck := range r.s.paychecks {
		if paycheck.TeacherID == teacherID &&
			sameDay(paycheck.PeriodStart, start) &&
			sameDay(paycheck.PeriodEnd, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaycheckRepo) List(_ context.Context, filter repository.PaycheckFilter, offset, limit int) ([]model.Paycheck, int64, error) {
	var out []model.Paycheck
	for _, paycheck := range r.s.paychecks {
		if filter.TeacherID != "" && paycheck.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Paid != nil && paycheck.Paid != *filter.Paid {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if paycheck.PeriodStart.Before(*filter.StartDate) || paycheck.PeriodEnd.After(*filter.EndDate) {
				continue
			}
		}
		out = append(out, paycheck)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.Before(out[j].PeriodStart) })
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *memPaycheckRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]model.Paycheck, error) {
	var out []model.Paycheck
	for _, paycheck := range r.s.paychecks {
		if paycheck.PeriodStart.Before(start) || paycheck.PeriodEnd.After(end) {
			continue
		}
		out = append(out, paycheck)
	}
	return out, nil
}

func (r *memPaycheckRepo) Update(_ context.Context, paycheck *model.Paycheck) error {
	if _, ok := r.s.paychecks[paycheck.PaycheckID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.paychecks[paycheck.PaycheckID] = *paycheck
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
