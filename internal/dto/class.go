package dto

import (
	"time"

	"schoolsync/backend/internal/model"
)

// ── class module DTOs ──

// FrequencySpec is the recurrence descriptor on the wire.
type FrequencySpec struct {
	Freq  string `json:"freq"   binding:"required,oneof=daily weekly DAILY WEEKLY"`
	ByDay string `json:"by_day" binding:"required"`
	Weeks int    `json:"weeks"  binding:"required,min=1"`
}

// ToModel converts the wire descriptor to the stored form.
func (f *FrequencySpec) ToModel() *model.Frequency {
	if f == nil {
		return nil
	}
	return &model.Frequency{Freq: f.Freq, ByDay: f.ByDay, Weeks: f.Weeks}
}

// CreateClassRequest creates a class and its calendar event.
type CreateClassRequest struct {
	Name        string         `json:"name"        binding:"required,min=2,max=100"`
	TeacherID   string         `json:"teacher_id"  binding:"required,uuid"`
	Capacity    int            `json:"capacity"    binding:"required,min=1"`
	StartsAt    time.Time      `json:"starts_at"   binding:"required"`
	EndsAt      time.Time      `json:"ends_at"     binding:"required"`
	Description string         `json:"description"`
	Frequency   *FrequencySpec `json:"frequency"`
}

// UpdateClassRequest is a typed partial update; nil fields are untouched.
// The recurrence descriptor is deliberately absent: the stored one is
// reused for the calendar update.
type UpdateClassRequest struct {
	Name        *string    `json:"name"        binding:"omitempty,min=2,max=100"`
	Capacity    *int       `json:"capacity"    binding:"omitempty,min=1"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Description *string    `json:"description"`
}

// ListClassesRequest filters and paginates the class listing.
type ListClassesRequest struct {
	PageRequest
	Name        string `form:"name"`
	Date        string `form:"date"` // "2024-05-01", matches the start day
	Description string `form:"description"`
}

// ParseDate returns the date filter, or nil when unset.
func (r *ListClassesRequest) ParseDate() (*time.Time, error) {
	if r.Date == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ClassResponse is the class wire representation.
type ClassResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	TeacherID   string         `json:"teacher_id"`
	Capacity    int            `json:"capacity"`
	StartsAt    string         `json:"starts_at"`
	EndsAt      string         `json:"ends_at"`
	Description string         `json:"description,omitempty"`
	Frequency   *FrequencySpec `json:"frequency,omitempty"`
	EventID     string         `json:"event_id"`
}

// NewClassResponse maps a model row to its wire form.
func NewClassResponse(c *model.Class) ClassResponse {
	resp := ClassResponse{
		ID:          c.ClassID,
		Name:        c.Name,
		TeacherID:   c.TeacherID,
		Capacity:    c.Capacity,
		StartsAt:    c.StartsAt.Format(time.RFC3339),
		EndsAt:      c.EndsAt.Format(time.RFC3339),
		Description: c.Description,
		EventID:     c.EventID,
	}
	if c.Frequency != nil {
		resp.Frequency = &FrequencySpec{
			Freq:  c.Frequency.Freq,
			ByDay: c.Frequency.ByDay,
			Weeks: c.Frequency.Weeks,
		}
	}
	return resp
}

// ClassWithRosterResponse is a class together with its reserved students.
type ClassWithRosterResponse struct {
	ClassResponse
	Students []StudentResponse `json:"students"`
}

// NewClassWithRosterResponse maps a class with its preloaded roster.
func NewClassWithRosterResponse(c *model.Class) ClassWithRosterResponse {
	students := make([]StudentResponse, 0, len(c.Students))
	for i := range c.Students {
		students = append(students, NewStudentResponse(&c.Students[i]))
	}
	return ClassWithRosterResponse{
		ClassResponse: NewClassResponse(c),
		Students:      students,
	}
}
