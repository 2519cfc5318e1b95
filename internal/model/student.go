package model

// Student is an enrolled school student.
type Student struct {
	StudentID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	FirstName   string  `gorm:"type:varchar(150);not null"                     json:"first_name"`
	LastName    string  `gorm:"type:varchar(150);not null"                     json:"last_name"`
	Email       string  `gorm:"type:varchar(250);not null;uniqueIndex"         json:"email"`
	Phone       string  `gorm:"type:varchar(100);not null"                     json:"phone"`
	ParentPhone *string `gorm:"type:varchar(100)"                              json:"parent_phone,omitempty"`
	BirthYear   int     `gorm:"not null"                                       json:"birth_year"`
	BaseModel

	Classes []Class `gorm:"many2many:reservations;foreignKey:StudentID;joinForeignKey:StudentID;References:ClassID;joinReferences:ClassID" json:"classes,omitempty"`
}

// TableName maps the model to its table.
func (Student) TableName() string { return "students" }
