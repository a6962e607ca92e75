package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:          doctor.ID,
		Name:        doctor.Name,
		Email:       doctor.Email,
		PhoneNumber: doctor.PhoneNumber,
		Biography:   doctor.Biography,
		ImageURL:    doctor.ImageURL,
		Available:   doctor.Available,
		CreatedAt:   doctor.CreatedAt,
		UpdatedAt:   doctor.UpdatedAt,
	}

	if doctor.Specialty != nil && doctor.Specialty.ID != uuid.Nil {
		response.Specialty = SpecialtyToResponse(doctor.Specialty)
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = *DoctorToResponse(&doctor)
	}
	return responses
}

// AvailabilityToResponse converts a DoctorAvailability entity to DTO
func AvailabilityToResponse(window *entity.DoctorAvailability) *dto.AvailabilityResponse {
	if window == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        window.ID,
		DoctorID:  window.DoctorID,
		DayOfWeek: window.DayOfWeek,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
		CreatedAt: window.CreatedAt,
		UpdatedAt: window.UpdatedAt,
	}
}

// AvailabilitiesToResponses converts a slice of DoctorAvailability entities to DTOs
func AvailabilitiesToResponses(windows []entity.DoctorAvailability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(windows))
	for i, window := range windows {
		responses[i] = *AvailabilityToResponse(&window)
	}
	return responses
}
