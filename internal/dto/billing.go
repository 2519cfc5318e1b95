package dto

import (
	"time"

	"schoolsync/backend/internal/model"
)

// ── billing module DTOs ──

// LogWorkHoursRequest records a block of worked hours.
type LogWorkHoursRequest struct {
	TeacherID string  `json:"teacher_id" binding:"required,uuid"`
	Date      string  `json:"date"       binding:"required"` // "2024-05-01"
	Hours     float64 `json:"hours"      binding:"required,gt=0"`
}

// ParseDate returns the work date.
func (r *LogWorkHoursRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

// ListWorkHoursRequest filters and paginates work-hour listings.
type ListWorkHoursRequest struct {
	PageRequest
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// GeneratePaycheckRequest aggregates logged hours over a period.
type GeneratePaycheckRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
}

// ParsePeriod returns the inclusive period bounds.
func (r *GeneratePaycheckRequest) ParsePeriod() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ListPaychecksRequest filters and paginates paycheck listings.
type ListPaychecksRequest struct {
	PageRequest
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Paid      *bool  `form:"paid"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ListInvoicesRequest filters and paginates invoice listings.
type ListInvoicesRequest struct {
	PageRequest
	Paid     *bool  `form:"paid"`
	IssuedOn string `form:"issued_on"`
}

// WorkHourLogResponse is the work-hour-log wire representation.
type WorkHourLogResponse struct {
	ID        string  `json:"id"`
	TeacherID string  `json:"teacher_id"`
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
}

// NewWorkHourLogResponse maps a model row to its wire form.
func NewWorkHourLogResponse(l *model.WorkHourLog) WorkHourLogResponse {
	return WorkHourLogResponse{
		ID:        l.WorkHourLogID,
		TeacherID: l.TeacherID,
		Date:      l.WorkDate.Format(dateLayout),
		Hours:     l.Hours,
	}
}

// PaycheckResponse is the paycheck wire representation.
type PaycheckResponse struct {
	ID          string  `json:"id"`
	TeacherID   string  `json:"teacher_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	WorkHours   float64 `json:"work_hours"`
	SchoolHours float64 `json:"school_hours"`
	Hourly      float64 `json:"hourly"`
	Amount      float64 `json:"amount"`
	IssuedOn    string  `json:"issued_on"`
	Paid        bool    `json:"paid"`
	PaidOn      *string `json:"paid_on,omitempty"`
}

// NewPaycheckResponse maps a model row to its wire form.
func NewPaycheckResponse(p *model.Paycheck) PaycheckResponse {
	resp := PaycheckResponse{
		ID:          p.PaycheckID,
		TeacherID:   p.TeacherID,
		PeriodStart: p.PeriodStart.Format(dateLayout),
		PeriodEnd:   p.PeriodEnd.Format(dateLayout),
		WorkHours:   p.WorkHours,
		SchoolHours: p.SchoolHours,
		Hourly:      p.Hourly,
		Amount:      p.Amount,
		IssuedOn:    p.IssuedOn.Format(dateLayout),
		Paid:        p.Paid,
	}
	if p.PaidOn != nil {
		s := p.PaidOn.Format(dateLayout)
		resp.PaidOn = &s
	}
	return resp
}

// PayrollPreviewResponse is the non-persisting scheduled-recurrence
// estimate; it never becomes a paycheck.
type PayrollPreviewResponse struct {
	TeacherID   string  `json:"teacher_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	WorkHours   float64 `json:"work_hours"`
	SchoolHours float64 `json:"school_hours"`
	Hourly      float64 `json:"hourly"`
	Amount      float64 `json:"amount"`
	ClassCount  int     `json:"class_count"`
}

// InvoiceResponse is the invoice wire representation.
type InvoiceResponse struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id"`
	ClassID     *string `json:"class_id,omitempty"`
	IssuedOn    string  `json:"issued_on"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Paid        bool    `json:"paid"`
}

// NewInvoiceResponse maps a model row to its wire form.
func NewInvoiceResponse(i *model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          i.InvoiceID,
		StudentID:   i.StudentID,
		ClassID:     i.ClassID,
		IssuedOn:    i.IssuedOn.Format(dateLayout),
		Description: i.Description,
		Amount:      i.Amount,
		Paid:        i.Paid,
	}
}
