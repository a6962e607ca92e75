package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterPatientRequest registers a patient account with its profile
type RegisterPatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	BirthDate   string `json:"birth_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Address     string `json:"address" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	FullName       string                  `json:"full_name"`
	Role           string                  `json:"role,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
