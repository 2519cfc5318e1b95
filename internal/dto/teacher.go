package dto

import (
	"time"

	"schoolsync/backend/internal/model"
)

// ── teacher module DTOs ──

// CreateTeacherRequest creates a teacher.
type CreateTeacherRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=150"`
	LastName  string  `json:"last_name"  binding:"required,min=2,max=150"`
	Email     string  `json:"email"      binding:"required,email"`
	Phone     string  `json:"phone"      binding:"required,min=5,max=100"`
	Hourly    float64 `json:"hourly"     binding:"required,gt=0"`
	HireDate  string  `json:"hire_date"  binding:"omitempty"` // "2024-05-01", defaults to today
}

// ParseHireDate returns the hire date, defaulting to today.
func (r *CreateTeacherRequest) ParseHireDate() (time.Time, error) {
	if r.HireDate == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, r.HireDate)
}

// UpdateTeacherRequest is a typed partial update; nil fields are untouched.
type UpdateTeacherRequest struct {
	FirstName *string  `json:"first_name" binding:"omitempty,min=2,max=150"`
	LastName  *string  `json:"last_name"  binding:"omitempty,min=2,max=150"`
	Email     *string  `json:"email"      binding:"omitempty,email"`
	Phone     *string  `json:"phone"      binding:"omitempty,min=5,max=100"`
	Hourly    *float64 `json:"hourly"     binding:"omitempty,gt=0"`
}

// ListTeachersRequest filters and paginates the teacher listing.
type ListTeachersRequest struct {
	PageRequest
	LastName string `form:"last_name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
}

// TeacherResponse is the teacher wire representation.
type TeacherResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Hourly    float64 `json:"hourly"`
	HireDate  string  `json:"hire_date"`
}

// NewTeacherResponse maps a model row to its wire form.
func NewTeacherResponse(t *model.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        t.TeacherID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Phone:     t.Phone,
		Hourly:    t.Hourly,
		HireDate:  t.HireDate.Format(dateLayout),
	}
}
