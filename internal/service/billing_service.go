package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolsync/backend/internal/dto"
	"schoolsync/backend/internal/model"
	"schoolsync/backend/internal/repository"
)

// ── billing module errors ──

var (
	ErrWorkHoursLogged  = errors.New("identical work hours already logged")
	ErrPaycheckExists   = errors.New("paycheck for that period already exists")
	ErrNoWorkHours      = errors.New("no work hours logged in that period")
	ErrPaycheckNotFound = errors.New("paycheck not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
)

// schoolHourMinutes is the length of one school hour. Pay converts raw
// wall-clock hours into school hours before applying the rate.
const schoolHourMinutes = 45

// BillingService owns work-hour logging, paycheck generation and
// invoice settlement. Logged hours are the authoritative pay source;
// the schedule-derived preview never persists anything.
type BillingService interface {
	LogWorkHours(ctx context.Context, req *dto.LogWorkHoursRequest) (*dto.WorkHourLogResponse, error)
	ListWorkHours(ctx context.Context, req *dto.ListWorkHoursRequest) ([]dto.WorkHourLogResponse, int64, error)
	GeneratePaycheck(ctx context.Context, req *dto.GeneratePaycheckRequest) (*dto.PaycheckResponse, error)
	PayrollPreview(ctx context.Context, req *dto.GeneratePaycheckRequest) (*dto.PayrollPreviewResponse, error)
	ListPaychecks(ctx context.Context, req *dto.ListPaychecksRequest) ([]dto.PaycheckResponse, int64, error)
	PayPaycheck(ctx context.Context, id string) (*dto.PaycheckResponse, error)
	ListInvoices(ctx context.Context, req *dto.ListInvoicesRequest) ([]dto.InvoiceResponse, int64, error)
	PayInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	InvoiceStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
}

type billingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBillingService creates a BillingService.
func NewBillingService(repo *repository.Repository, logger *zap.Logger) BillingService {
	return &billingService{repo: repo, logger: logger}
}

func (s *billingService) LogWorkHours(ctx context.Context, req *dto.LogWorkHoursRequest) (*dto.WorkHourLogResponse, error) {
	workDate, err := req.ParseDate()
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	// Only the exact triple is a duplicate; a second shift on the same
	// day with different hours is legal.
	exists, err := s.repo.WorkHour.ExistsExact(ctx, req.TeacherID, workDate, req.Hours)
	if err != nil {
		s.logger.Error("work-hour duplicate check failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrWorkHoursLogged
	}

	log := &model.WorkHourLog{
		TeacherID: req.TeacherID,
		WorkDate:  workDate,
		Hours:     req.Hours,
	}
	if err := s.repo.WorkHour.Create(ctx, log); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWorkHoursLogged
		}
		s.logger.Error("work-hour insert failed", zap.Error(err))
		return nil, err
	}

	resp := dto.NewWorkHourLogResponse(log)
	return &resp, nil
}

func (s *billingService) ListWorkHours(ctx context.Context, req *dto.ListWorkHoursRequest) ([]dto.WorkHourLogResponse, int64, error) {
	filter := repository.WorkHourFilter{TeacherID: req.TeacherID}
	if req.StartDate != "" && req.EndDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, 0, err
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, 0, err
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	logs, total, err := s.repo.WorkHour.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("work-hour listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.WorkHourLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, dto.NewWorkHourLogResponse(&logs[i]))
	}
	return result, total, nil
}

func (s *billingService) GeneratePaycheck(ctx context.Context, req *dto.GeneratePaycheckRequest) (*dto.PaycheckResponse, error) {
	start, end, err := req.ParsePeriod()
	if err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Paycheck.ExistsForPeriod(ctx, req.TeacherID, start, end)
	if err != nil {
		s.logger.Error("paycheck period check failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrPaycheckExists
	}

	logs, err := s.repo.WorkHour.ListInRange(ctx, req.TeacherID, start, end)
	if err != nil {
		s.logger.Error("work-hour range query failed", zap.Error(err))
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoWorkHours
	}

	var rawHours float64
	for i := range logs {
		rawHours += logs[i].Hours
	}
	schoolHours := round2(rawHours * 60 / schoolHourMinutes)
	amount := round2(schoolHours * teacher.Hourly)

	paycheck := &model.Paycheck{
		TeacherID:   req.TeacherID,
		PeriodStart: start,
		PeriodEnd:   end,
		WorkHours:   rawHours,
		SchoolHours: schoolHours,
		Hourly:      teacher.Hourly,
		Amount:      amount,
		IssuedOn:    todayUTC(),
	}
	if err := s.repo.Paycheck.Create(ctx, paycheck); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPaycheckExists
		}
		s.logger.Error("paycheck insert failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("paycheck generated",
		zap.String("paycheck_id", paycheck.PaycheckID),
		zap.String("teacher_id", req.TeacherID),
		zap.Float64("amount", amount),
	)

	resp := dto.NewPaycheckResponse(paycheck)
	return &resp, nil
}

// PayrollPreview estimates pay from the class schedule instead of
// logged hours. Nothing is written; the figures are advisory only.
func (s *billingService) PayrollPreview(ctx context.Context, req *dto.GeneratePaycheckRequest) (*dto.PayrollPreviewResponse, error) {
	start, end, err := req.ParsePeriod()
	if err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher.GetWithClasses(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("teacher lookup failed", zap.Error(err))
		return nil, err
	}

	var rawHours float64
	classCount := 0
	for i := range teacher.Classes {
		c := &teacher.Classes[i]
		occurrences := classOccurrences(c, start, end)
		if occurrences == 0 {
			continue
		}
		classCount++
		rawHours += float64(occurrences) * c.Duration().Hours()
	}

	schoolHours := round2(rawHours * 60 / schoolHourMinutes)
	return &dto.PayrollPreviewResponse{
		TeacherID:   req.TeacherID,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		WorkHours:   round2(rawHours),
		SchoolHours: schoolHours,
		Hourly:      teacher.Hourly,
		Amount:      round2(schoolHours * teacher.Hourly),
		ClassCount:  classCount,
	}, nil
}

func (s *billingService) ListPaychecks(ctx context.Context, req *dto.ListPaychecksRequest) ([]dto.PaycheckResponse, int64, error) {
	filter := repository.PaycheckFilter{TeacherID: req.TeacherID, Paid: req.Paid}
	if req.StartDate != "" && req.EndDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, 0, err
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, 0, err
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	paychecks, total, err := s.repo.Paycheck.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("paycheck listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PaycheckResponse, 0, len(paychecks))
	for i := range paychecks {
		result = append(result, dto.NewPaycheckResponse(&paychecks[i]))
	}
	return result, total, nil
}

func (s *billingService) PayPaycheck(ctx context.Context, id string) (*dto.PaycheckResponse, error) {
	paycheck, err := s.repo.Paycheck.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaycheckNotFound
		}
		s.logger.Error("paycheck lookup failed", zap.Error(err))
		return nil, err
	}

	// Re-paying an already-paid check is a no-op, not an error.
	if !paycheck.Paid {
		paycheck.Paid = true
		paidOn := todayUTC()
		paycheck.PaidOn = &paidOn
		if err := s.repo.Paycheck.Update(ctx, paycheck); err != nil {
			s.logger.Error("paycheck update failed", zap.Error(err))
			return nil, err
		}
	}

	resp := dto.NewPaycheckResponse(paycheck)
	return &resp, nil
}

func (s *billingService) ListInvoices(ctx context.Context, req *dto.ListInvoicesRequest) ([]dto.InvoiceResponse, int64, error) {
	filter := repository.InvoiceFilter{Paid: req.Paid}
	if req.IssuedOn != "" {
		issuedOn, err := time.Parse("2006-01-02", req.IssuedOn)
		if err != nil {
			return nil, 0, err
		}
		filter.IssuedOn = &issuedOn
	}

	invoices, total, err := s.repo.Invoice.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("invoice listing failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		result = append(result, dto.NewInvoiceResponse(&invoices[i]))
	}
	return result, total, nil
}

func (s *billingService) PayInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := s.repo.Invoice.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("invoice lookup failed", zap.Error(err))
		return nil, err
	}

	if !invoice.Paid {
		invoice.Paid = true
		if err := s.repo.Invoice.Update(ctx, invoice); err != nil {
			s.logger.Error("invoice update failed", zap.Error(err))
			return nil, err
		}
	}

	resp := dto.NewInvoiceResponse(invoice)
	return &resp, nil
}

func (s *billingService) InvoiceStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	invoice, err := s.repo.Invoice.GetWithStudent(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("invoice lookup failed", zap.Error(err))
		return nil, err
	}
	if invoice.Student == nil {
		return nil, ErrStudentNotFound
	}

	resp := dto.NewStudentResponse(invoice.Student)
	return &resp, nil
}

// round2 rounds to two decimal places, the grain of money and hours.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var weekdayCodes = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// classOccurrences counts how many times a class meets inside the
// inclusive [start, end] day range, following its recurrence. A class
// without a recurrence meets once, on its start day.
func classOccurrences(c *model.Class, start, end time.Time) int {
	firstDay := dateOnly(c.StartsAt)
	if c.Frequency == nil {
		if firstDay.Before(start) || firstDay.After(end) {
			return 0
		}
		return 1
	}

	meets := make(map[time.Weekday]bool)
	for _, code := range splitByDay(c.Frequency.ByDay) {
		if wd, ok := weekdayCodes[code]; ok {
			meets[wd] = true
		}
	}

	// The series closes 4 days after the start of its final week, the
	// same bound stamped into the calendar rule.
	lastDay := firstDay.AddDate(0, 0, (c.Frequency.Weeks-1)*7+4)

	count := 0
	for d := firstDay; !d.After(lastDay); d = d.AddDate(0, 0, 1) {
		if !meets[d.Weekday()] {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		count++
	}
	return count
}

func splitByDay(byDay string) []string {
	var codes []string
	for _, part := range strings.Split(byDay, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}

// dateOnly truncates to midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
