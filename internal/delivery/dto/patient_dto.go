package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// PatientUpdateSelfRequest carries the fields a patient may edit on their own
// profile. Password changes require the old password.
type PatientUpdateSelfRequest struct {
	OldPassword string `json:"old_password" validate:"omitempty"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address     string `json:"address" validate:"omitempty"`
}

// Response DTOs

type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	BirthDate   string    `json:"birth_date,omitempty"`
	Address     string    `json:"address,omitempty"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	BirthDate   string    `json:"birth_date,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
