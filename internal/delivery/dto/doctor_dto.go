package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name        string     `json:"name" validate:"required,min=2"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,min=10,max=20"`
	SpecialtyID *uuid.UUID `json:"specialty_id" validate:"omitempty"`
	Biography   string     `json:"biography" validate:"omitempty"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
}

type UpdateDoctorRequest struct {
	Name        string     `json:"name" validate:"omitempty,min=2"`
	Email       string     `json:"email" validate:"omitempty,email"`
	PhoneNumber string     `json:"phone_number" validate:"omitempty,min=10,max=20"`
	SpecialtyID *uuid.UUID `json:"specialty_id" validate:"omitempty"`
	Biography   string     `json:"biography" validate:"omitempty"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	Available   *bool      `json:"available" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phone_number,omitempty"`
	Specialty   *SpecialtyResponse `json:"specialty,omitempty"`
	Biography   string             `json:"biography,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	Available   *bool              `json:"available"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
