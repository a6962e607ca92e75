package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specialty represents a consultation type offered by the clinic.
// Price is the consultation fee charged when an appointment is booked.
type Specialty struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []Doctor `gorm:"foreignKey:SpecialtyID" json:"doctors,omitempty"`
}

func (Specialty) TableName() string {
	return "specialties"
}
