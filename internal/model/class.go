package model

import "time"

// Class is a scheduled class mirrored to a Google Calendar event.
// EventID is written only after the calendar confirms the event; a class
// row without it never exists.
type Class struct {
	ClassID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name        string     `gorm:"type:varchar(100);not null"                     json:"name"`
	TeacherID   string     `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Capacity    int        `gorm:"not null"                                       json:"capacity"`
	StartsAt    time.Time  `gorm:"not null"                                       json:"starts_at"`
	EndsAt      time.Time  `gorm:"not null"                                       json:"ends_at"`
	Description string     `gorm:"type:text"                                      json:"description"`
	Frequency   *Frequency `gorm:"type:jsonb"                                     json:"frequency,omitempty"`
	EventID     string     `gorm:"type:varchar(150);not null"                     json:"event_id"`
	BaseModel

	Teacher  *Teacher  `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Students []Student `gorm:"many2many:reservations;foreignKey:ClassID;joinForeignKey:ClassID;References:StudentID;joinReferences:StudentID" json:"students,omitempty"`
}

// TableName maps the model to its table.
func (Class) TableName() string { return "classes" }

// Duration returns the wall-clock length of one occurrence.
func (c *Class) Duration() time.Duration {
	return c.EndsAt.Sub(c.StartsAt)
}
