package dto

// ── reservation module DTOs ──

// CreateReservationRequest books a seat and bills the supplied amount.
type CreateReservationRequest struct {
	ClassID   string  `json:"class_id"   binding:"required,uuid"`
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Amount    float64 `json:"amount"     binding:"required,gt=0"`
}

// CancelReservationRequest removes a student from a class.
type CancelReservationRequest struct {
	ClassID   string `json:"class_id"   binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
}
