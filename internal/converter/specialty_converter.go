package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// SpecialtyToResponse converts a Specialty entity to SpecialtyResponse DTO
func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		Price:       specialty.Price,
		CreatedAt:   specialty.CreatedAt,
		UpdatedAt:   specialty.UpdatedAt,
	}
}

// SpecialtiesToResponses converts a slice of Specialty entities to DTOs
func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, specialty := range specialties {
		responses[i] = *SpecialtyToResponse(&specialty)
	}
	return responses
}
