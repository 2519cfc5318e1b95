package dto

import "schoolsync/backend/internal/model"

// ── student module DTOs ──

// CreateStudentRequest creates a student.
type CreateStudentRequest struct {
	FirstName   string  `json:"first_name"   binding:"required,min=2,max=150"`
	LastName    string  `json:"last_name"    binding:"required,min=2,max=150"`
	Email       string  `json:"email"        binding:"required,email"`
	Phone       string  `json:"phone"        binding:"required,min=5,max=100"`
	ParentPhone *string `json:"parent_phone" binding:"omitempty,min=5,max=100"`
	BirthYear   int     `json:"birth_year"   binding:"required"`
}

// UpdateStudentRequest is a typed partial update; nil fields are untouched.
type UpdateStudentRequest struct {
	FirstName   *string `json:"first_name"   binding:"omitempty,min=2,max=150"`
	LastName    *string `json:"last_name"    binding:"omitempty,min=2,max=150"`
	Email       *string `json:"email"        binding:"omitempty,email"`
	Phone       *string `json:"phone"        binding:"omitempty,min=5,max=100"`
	ParentPhone *string `json:"parent_phone" binding:"omitempty,min=5,max=100"`
	BirthYear   *int    `json:"birth_year"`
}

// ListStudentsRequest filters and paginates the student listing.
type ListStudentsRequest struct {
	PageRequest
	LastName string `form:"last_name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
}

// StudentResponse is the student wire representation.
type StudentResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ParentPhone *string `json:"parent_phone,omitempty"`
	BirthYear   int     `json:"birth_year"`
}

// NewStudentResponse maps a model row to its wire form.
func NewStudentResponse(s *model.Student) StudentResponse {
	return StudentResponse{
		ID:          s.StudentID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Phone:       s.Phone,
		ParentPhone: s.ParentPhone,
		BirthYear:   s.BirthYear,
	}
}
