package model

import "time"

// Paycheck is the aggregated pay for a teacher over an inclusive period.
// Hourly is a snapshot of the teacher's rate at generation time. At most
// one paycheck exists per (teacher, period_start, period_end).
type Paycheck struct {
	PaycheckID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"paycheck_id"`
	TeacherID   string     `gorm:"type:uuid;not null;uniqueIndex:uq_paychecks_period" json:"teacher_id"`
	PeriodStart time.Time  `gorm:"type:date;not null;uniqueIndex:uq_paychecks_period" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"type:date;not null;uniqueIndex:uq_paychecks_period" json:"period_end"`
	WorkHours   float64    `gorm:"not null"                                       json:"work_hours"`
	SchoolHours float64    `gorm:"not null"                                       json:"school_hours"`
	Hourly      float64    `gorm:"not null"                                       json:"hourly"`
	Amount      float64    `gorm:"not null"                                       json:"amount"`
	IssuedOn    time.Time  `gorm:"type:date;not null;default:CURRENT_DATE"        json:"issued_on"`
	Paid        bool       `gorm:"not null;default:false"                         json:"paid"`
	PaidOn      *time.Time `gorm:"type:date"                                      json:"paid_on,omitempty"`
	BaseModel

	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName maps the model to its table.
func (Paycheck) TableName() string { return "paychecks" }
