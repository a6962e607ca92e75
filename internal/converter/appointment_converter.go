package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		StartTime:       appointment.StartTime,
		EndTime:         appointment.EndTime,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Specialty.ID != uuid.Nil {
		response.Specialty = SpecialtyToResponse(&appointment.Specialty)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}
