package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAvailabilityRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,gte=0,lte=6"` // 0=Sunday .. 6=Saturday
	StartTime string `json:"start_time" validate:"required"`              // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`                // Format: HH:MM
}

// Response DTOs

type AvailabilityResponse struct {
	ID        int       `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityListResponse struct {
	Windows []AvailabilityResponse `json:"windows"`
	Total   int                    `json:"total"`
}

// SlotResponse is one bookable interval offered to the patient for a chosen
// doctor and date. The list is recomputed on every request, never persisted.
type SlotResponse struct {
	SlotID    string `json:"slot_id"`
	Label     string `json:"label"` // "HH:MM - HH:MM"
	Available bool   `json:"available"`
}

type SlotListResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"` // Format: YYYY-MM-DD
	Slots    []SlotResponse `json:"slots"`
}
