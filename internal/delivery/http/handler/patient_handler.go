package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"
)

type PatientHandler struct {
	patientProfileUsecase usecase.PatientProfileUsecase
	validator             *validator.CustomValidator
}

func NewPatientHandler(patientProfileUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientProfileUsecase: patientProfileUsecase,
		validator:             validator,
	}
}

// GetProfile handles getting the patient's own profile
// @Summary Get my profile
// @Description Get the authenticated patient's profile
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.patientProfileUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound, usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile handles the patient's self-service profile edits
// @Summary Update my profile
// @Description Update phone, address, or password (old password required)
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PatientUpdateSelfRequest true "Update Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /patients/me [put]
func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientUpdateSelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.patientProfileUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound, usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrOldPasswordNeeded:
			response.BadRequest(w, err.Error())
		case usecase.ErrWrongOldPassword:
			response.Error(w, http.StatusUnauthorized, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
