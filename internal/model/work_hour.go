package model

import "time"

// WorkHourLog is one logged block of teacher work hours.
// The (teacher, date, hours) triple is unique; the same teacher and date
// with a different hour value is a separate shift and legal.
type WorkHourLog struct {
	WorkHourLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"work_hour_log_id"`
	TeacherID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_work_hours_entry" json:"teacher_id"`
	WorkDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_work_hours_entry" json:"work_date"`
	Hours         float64   `gorm:"not null;uniqueIndex:uq_work_hours_entry"       json:"hours"`
	BaseModel

	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName maps the model to its table.
func (WorkHourLog) TableName() string { return "work_hour_logs" }
