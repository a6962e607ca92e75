package handler

import (
	"errors"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	log                 *logrus.Logger
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, log *logrus.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		log:                 log,
	}
}

// GetDaySlots handles the public slot lookup for a doctor and date
// @Summary Get day slots
// @Description Compute the bookable slots for a doctor on a calendar date
// @Tags Availability
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/{id}/slots [get]
func (h *AvailabilityHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	slots, err := h.availabilityUsecase.GetDaySlots(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrAvailabilityLookup), errors.Is(err, usecase.ErrInvalidTimeData):
			// The booking page treats a failed lookup as a day with nothing
			// bookable rather than an error screen
			h.log.Warnf("Slot lookup degraded for doctor %s on %s: %+v", doctorID, date, err)
			response.Success(w, http.StatusOK, "Slots retrieved successfully", &dto.SlotListResponse{
				DoctorID: doctorID,
				Date:     date,
				Slots:    []dto.SlotResponse{},
			})
		default:
			response.InternalServerError(w, "Failed to get slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}
