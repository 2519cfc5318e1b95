package model

import "time"

// Invoice is a billing record created as a side effect of a reservation.
type Invoice struct {
	InvoiceID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invoice_id"`
	StudentID   string    `gorm:"type:uuid;not null"                             json:"student_id"`
	ClassID     *string   `gorm:"type:uuid"                                      json:"class_id,omitempty"`
	IssuedOn    time.Time `gorm:"type:date;not null;default:CURRENT_DATE"        json:"issued_on"`
	Description string    `gorm:"type:text"                                      json:"description"`
	Amount      float64   `gorm:"not null"                                       json:"amount"`
	Paid        bool      `gorm:"not null;default:false"                         json:"paid"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName maps the model to its table.
func (Invoice) TableName() string { return "invoices" }
