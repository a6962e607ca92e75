package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateAppointment handles booking a slot
// @Summary Book appointment
// @Description Book a template slot for the authenticated patient
// @Tags Appointment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrAppointmentDatePast, usecase.ErrInvalidSlot:
			response.BadRequest(w, err.Error())
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrDoctorUnavailable, usecase.ErrSlotUnavailable:
			response.UnprocessableEntity(w, err.Error())
		case usecase.ErrSlotAlreadyBooked:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// GetMyAppointments handles listing the patient's appointments
// @Summary List my appointments
// @Description List the authenticated patient's appointments split into upcoming and past
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param tab query string false "upcoming or past (default upcoming)"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *BookingHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	tab := entity.AppointmentTab(r.URL.Query().Get("tab"))

	appointments, err := h.bookingUsecase.GetMyAppointments(r.Context(), tab)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CancelAppointment handles cancelling the patient's own appointment
// @Summary Cancel appointment
// @Description Cancel an appointment that has not yet taken place
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *BookingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment id")
		return
	}

	if err := h.bookingUsecase.CancelAppointment(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, err.Error())
		case usecase.ErrAppointmentAlreadyCancelled, usecase.ErrAppointmentNotCancellable, usecase.ErrAppointmentAlreadyStarted:
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
