package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	SpecialtyID uuid.UUID `json:"specialty_id" validate:"required"`
	Date        string    `json:"date" validate:"required"`    // Format: YYYY-MM-DD
	SlotID      string    `json:"slot_id" validate:"required"` // template slot id
	Notes       string    `json:"notes" validate:"omitempty,max=1000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID          `json:"id"`
	PatientID       uuid.UUID          `json:"patient_id"`
	DoctorID        uuid.UUID          `json:"doctor_id"`
	Doctor          *DoctorResponse    `json:"doctor,omitempty"`
	Specialty       *SpecialtyResponse `json:"specialty,omitempty"`
	AppointmentDate string             `json:"appointment_date"`
	StartTime       string             `json:"start_time"`
	EndTime         string             `json:"end_time"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
