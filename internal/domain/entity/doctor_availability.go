package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorAvailability represents a recurring open interval during which a
// doctor accepts appointments on a given weekday.
//
// DayOfWeek uses the numeric weekday index 0=Sunday .. 6=Saturday.
// StartTime/EndTime are 24-hour "HH:MM" wall-clock strings, StartTime < EndTime.
// A doctor may have multiple rows per weekday (split shifts); slot computation
// unions all matching windows.
type DoctorAvailability struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_doctor_availability_doctor_day" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;index:idx_doctor_availability_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availability"
}
