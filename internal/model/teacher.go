package model

import "time"

// Teacher is an employed teacher with an hourly pay rate.
type Teacher struct {
	TeacherID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	FirstName string    `gorm:"type:varchar(150);not null"                     json:"first_name"`
	LastName  string    `gorm:"type:varchar(150);not null"                     json:"last_name"`
	Email     string    `gorm:"type:varchar(250);not null;uniqueIndex"         json:"email"`
	Phone     string    `gorm:"type:varchar(100);not null"                     json:"phone"`
	Hourly    float64   `gorm:"not null"                                       json:"hourly"`
	HireDate  time.Time `gorm:"type:date;not null;default:CURRENT_DATE"        json:"hire_date"`
	BaseModel

	Classes []Class `gorm:"foreignKey:TeacherID;references:TeacherID" json:"classes,omitempty"`
}

// TableName maps the model to its table.
func (Teacher) TableName() string { return "teachers" }
