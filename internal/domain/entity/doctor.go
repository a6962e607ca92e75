package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a clinic doctor. Doctors do not log in; their records and
// weekly availability are managed by clinic administrators.
type Doctor struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	SpecialtyID *uuid.UUID `gorm:"type:uuid;index" json:"specialty_id,omitempty"`
	Biography   string     `gorm:"type:text" json:"biography,omitempty"`
	ImageURL    string     `gorm:"type:text" json:"image_url,omitempty"`
	Available   *bool      `gorm:"not null;default:true;index" json:"available"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Specialty    *Specialty           `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
