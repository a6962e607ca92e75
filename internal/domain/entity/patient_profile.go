package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber string    `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	BirthDate   time.Time `gorm:"type:date" json:"birth_date"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
