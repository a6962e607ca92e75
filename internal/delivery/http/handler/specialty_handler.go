package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

// Create handles specialty creation (admin)
// @Summary Create specialty
// @Description Create a consultation specialty with its fee
// @Tags Specialty
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSpecialtyRequest true "Create Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /specialties [post]
func (h *SpecialtyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNameTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create specialty")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

// GetAll handles listing all specialties (public)
// @Summary List specialties
// @Description List all consultation specialties
// @Tags Specialty
// @Produce json
// @Success 200 {object} response.Response
// @Router /specialties [get]
func (h *SpecialtyHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

// GetByID handles getting a single specialty (public)
// @Summary Get specialty
// @Description Get a specialty by id
// @Tags Specialty
// @Produce json
// @Param id path string true "Specialty ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /specialties/{id} [get]
func (h *SpecialtyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty id")
		return
	}

	specialty, err := h.specialtyUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to get specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

// Update handles specialty updates (admin)
// @Summary Update specialty
// @Description Update a specialty's name, description, or fee
// @Tags Specialty
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Specialty ID"
// @Param request body dto.UpdateSpecialtyRequest true "Update Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /specialties/{id} [put]
func (h *SpecialtyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty id")
		return
	}

	var req dto.UpdateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyNameTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

// Delete handles specialty deletion (admin)
// @Summary Delete specialty
// @Description Delete a specialty not referenced by doctors or appointments
// @Tags Specialty
// @Security BearerAuth
// @Produce json
// @Param id path string true "Specialty ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /specialties/{id} [delete]
func (h *SpecialtyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty id")
		return
	}

	if err := h.specialtyUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyInUse:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}
