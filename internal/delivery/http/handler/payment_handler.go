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
	"github.com/sirupsen/logrus"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
		log:            log,
	}
}

// CreatePayment handles charging a pending appointment
// @Summary Create payment
// @Description Charge the consultation fee of a pending appointment via credit card or PIX
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.CreatePayment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, err.Error())
		case usecase.ErrAppointmentNotPayable:
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment created successfully", payment)
}

// CheckPayment handles polling a payment's status
// @Summary Check payment
// @Description Poll the gateway for the payment's current status
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id}/check [get]
func (h *PaymentHandler) CheckPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment id")
		return
	}

	payment, err := h.paymentUsecase.CheckPayment(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case usecase.ErrPaymentNotOwned:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to check payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment retrieved successfully", payment)
}

// Webhook handles the gateway's payment notification callback.
//
// Always answers 200 on processable bodies so the gateway stops retrying;
// transient failures answer 500 and the gateway redelivers.
// @Summary Payment webhook
// @Description Receive payment event notifications from the gateway
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var notification dto.WebhookNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		h.log.Warnf("Malformed webhook body: %+v", err)
		response.Success(w, http.StatusOK, "Notification ignored", nil)
		return
	}

	if err := h.paymentUsecase.ProcessNotification(r.Context(), &notification); err != nil {
		response.InternalServerError(w, "Failed to process notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification processed", nil)
}
