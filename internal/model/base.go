package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BaseModel holds the audit timestamps embedded in every row.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── recurrence descriptor, stored as JSONB ──

// Frequency describes how a class repeats on the calendar.
// Freq is DAILY or WEEKLY, ByDay is a comma-separated weekday code list
// ("MO,WE,FR"), Weeks is the number of weeks the series runs.
type Frequency struct {
	Freq  string `json:"freq"`
	ByDay string `json:"by_day"`
	Weeks int    `json:"weeks"`
}

// Scan implements sql.Scanner for the JSONB column.
func (f *Frequency) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("Frequency.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, f)
}

// Value implements driver.Valuer for the JSONB column.
func (f Frequency) Value() (driver.Value, error) {
	return json.Marshal(f)
}
