package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// Create handles doctor creation (admin)
// @Summary Create doctor
// @Description Register a doctor record managed by the clinic
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors [post]
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorEmailTaken:
			response.Conflict(w, err.Error())
		case usecase.ErrUnknownSpecialtyRef:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// GetAll handles listing doctors
// @Summary List doctors
// @Description List doctors; available=true restricts to doctors accepting appointments, specialty_id filters by specialty
// @Tags Doctor
// @Produce json
// @Param available query bool false "Only doctors accepting appointments"
// @Param specialty_id query string false "Filter by specialty"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("available") == "true" {
		var specialtyID *uuid.UUID
		if raw := query.Get("specialty_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(w, "Invalid specialty id")
				return
			}
			specialtyID = &id
		}

		doctors, err := h.doctorUsecase.GetAvailable(r.Context(), specialtyID)
		if err != nil {
			response.InternalServerError(w, "Failed to list doctors")
			return
		}
		response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
		return
	}

	doctors, err := h.doctorUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetByID handles getting a single doctor (public)
// @Summary Get doctor
// @Description Get a doctor by id
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// Update handles doctor updates (admin)
// @Summary Update doctor
// @Description Update a doctor's record or availability flag
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [put]
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorEmailTaken:
			response.Conflict(w, err.Error())
		case usecase.ErrUnknownSpecialtyRef:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// Delete handles doctor deletion (admin)
// @Summary Delete doctor
// @Description Delete a doctor with no appointments
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorHasBookings:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// AddAvailability handles adding a weekly availability window (admin)
// @Summary Add availability window
// @Description Add a recurring weekly open interval for a doctor
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.CreateAvailabilityRequest true "Window Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [post]
func (h *DoctorHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.doctorUsecase.AddAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidWindowTimes:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to add availability window")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Availability window added successfully", window)
}

// GetAvailability handles listing a doctor's weekly windows
// @Summary List availability windows
// @Description List a doctor's recurring weekly open intervals
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	windows, err := h.doctorUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to list availability windows")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability windows retrieved successfully", windows)
}

// RemoveAvailability handles deleting a weekly window (admin)
// @Summary Remove availability window
// @Description Remove one of a doctor's recurring weekly windows
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param windowId path int true "Window ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability/{windowId} [delete]
func (h *DoctorHandler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	windowID, err := strconv.Atoi(vars["windowId"])
	if err != nil {
		response.BadRequest(w, "Invalid window id")
		return
	}

	if err := h.doctorUsecase.RemoveAvailability(r.Context(), doctorID, windowID); err != nil {
		switch err {
		case usecase.ErrWindowNotFound:
			response.NotFound(w, "Availability window not found")
		default:
			response.InternalServerError(w, "Failed to remove availability window")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability window removed successfully", nil)
}
