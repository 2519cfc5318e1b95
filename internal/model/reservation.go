package model

// Reservation is the student-to-class seat assignment join row.
// Its existence implies the student's email is on the calendar event's
// attendee list.
type Reservation struct {
	ReservationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reservation_id"`
	StudentID     string `gorm:"type:uuid;not null;uniqueIndex:uq_reservations_student_class" json:"student_id"`
	ClassID       string `gorm:"type:uuid;not null;uniqueIndex:uq_reservations_student_class" json:"class_id"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Class   *Class   `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
}

// TableName maps the model to its table.
func (Reservation) TableName() string { return "reservations" }
