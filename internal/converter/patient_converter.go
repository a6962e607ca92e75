package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// PatientProfileToProfileResponse converts a PatientProfile entity to its
// embedded profile DTO
func PatientProfileToProfileResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		UserID:      profile.UserID,
		PhoneNumber: profile.PhoneNumber,
		Address:     profile.Address,
	}
	if !profile.BirthDate.IsZero() {
		response.BirthDate = profile.BirthDate.Format("2006-01-02")
	}

	return response
}

// PatientProfileToResponse combines a PatientProfile with its User into a
// full PatientResponse
func PatientProfileToResponse(profile *entity.PatientProfile, user *entity.User) *dto.PatientResponse {
	if profile == nil || user == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: profile.PhoneNumber,
		Address:     profile.Address,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if !profile.BirthDate.IsZero() {
		response.BirthDate = profile.BirthDate.Format("2006-01-02")
	}

	return response
}
