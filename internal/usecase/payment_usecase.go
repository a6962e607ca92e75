package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/gateway"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentNotOwned       = errors.New("payment does not belong to you")
	ErrAppointmentNotPayable = errors.New("appointment is not awaiting payment")
	ErrPaymentAlreadySettled = errors.New("payment is already settled")
)

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	CheckPayment(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error)
	ProcessNotification(ctx context.Context, notification *dto.WebhookNotification) error
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	paymentRepo     repository.PaymentRepository
	appointmentRepo repository.AppointmentRepository
	specialtyRepo   repository.SpecialtyRepository
	userRepo        repository.UserRepository
	paymentGateway  gateway.PaymentGateway
	auditService    service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	paymentRepo repository.PaymentRepository,
	appointmentRepo repository.AppointmentRepository,
	specialtyRepo repository.SpecialtyRepository,
	userRepo repository.UserRepository,
	paymentGateway gateway.PaymentGateway,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		specialtyRepo:   specialtyRepo,
		userRepo:        userRepo,
		paymentGateway:  paymentGateway,
		auditService:    auditService,
	}
}

// CreatePayment charges the consultation fee of a pending_payment appointment
// through the gateway. An approved charge confirms the appointment
// immediately; pending and in_process charges leave it awaiting settlement
// via webhook or polling.
func (u *paymentUsecase) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != userID {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.IsPendingPayment() {
		return nil, ErrAppointmentNotPayable
	}

	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, appointment.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %s: %+v", appointment.SpecialtyID, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	firstName, lastName := splitFullName(user.FullName)

	charge, err := u.paymentGateway.CreatePayment(ctx, &gateway.ChargeRequest{
		Amount:         specialty.Price,
		Description:    specialty.Name,
		Method:         req.Method,
		PayerEmail:     user.Email,
		PayerFirstName: firstName,
		PayerLastName:  lastName,
		CardToken:      req.CardToken,
		CardMethodID:   req.CardMethodID,
		PayerDocType:   req.DocType,
		PayerDocNumber: req.DocNumber,
		Installments:   req.Installments,
	})
	if err != nil {
		u.log.Warnf("Gateway charge failed for appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}

	payment := &entity.Payment{
		AppointmentID: appointment.ID,
		Amount:        specialty.Price,
		Method:        entity.PaymentMethod(req.Method),
		Status:        charge.Status,
		ExternalID:    charge.ExternalID,
		PaymentData:   entity.JSON(charge.Raw),
	}

	if err := u.paymentRepo.Create(ctx, u.db, payment); err != nil {
		u.log.Warnf("Failed to create payment: %+v", err)
		return nil, err
	}

	if payment.IsApproved() {
		if err := u.appointmentRepo.UpdateStatus(ctx, u.db, appointment.ID, entity.AppointmentStatusScheduled); err != nil {
			u.log.Warnf("Failed to schedule appointment %s: %+v", appointment.ID, err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionPaymentCreate, "payment", payment.ID.String(), payment); err != nil {
		u.log.Warnf("Failed to audit payment create: %+v", err)
	}

	u.log.Infof("Payment created: id=%s, appointment=%s, status=%s", payment.ID, appointment.ID, payment.Status)
	return converter.PaymentToResponse(payment), nil
}

// CheckPayment polls the gateway for the current charge status and applies
// any transition. The account area calls this while a PIX charge is pending.
func (u *paymentUsecase) CheckPayment(ctx context.Context, paymentID uuid.UUID) (*dto.PaymentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	payment, err := u.paymentRepo.FindByID(ctx, u.db, paymentID)
	if err != nil {
		u.log.Warnf("Failed to find payment %s: %+v", paymentID, err)
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, payment.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", payment.AppointmentID, err)
		return nil, err
	}
	if appointment == nil || appointment.PatientID != userID {
		return nil, ErrPaymentNotOwned
	}

	// Already terminal, nothing to poll
	if payment.IsApproved() || payment.IsFinalRejection() {
		return converter.PaymentToResponse(payment), nil
	}

	charge, err := u.paymentGateway.GetPayment(ctx, payment.ExternalID)
	if err != nil {
		u.log.Warnf("Gateway lookup failed for payment %s: %+v", payment.ExternalID, err)
		return nil, err
	}

	if err := u.applyCharge(ctx, payment, appointment, charge); err != nil {
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

// ProcessNotification handles the gateway's webhook callback. Unknown
// external ids are acknowledged without error so the gateway stops retrying.
func (u *paymentUsecase) ProcessNotification(ctx context.Context, notification *dto.WebhookNotification) error {
	if notification.Data.ID == "" {
		return nil
	}

	payment, err := u.paymentRepo.FindByExternalID(ctx, u.db, notification.Data.ID)
	if err != nil {
		u.log.Warnf("Failed to find payment by external id %s: %+v", notification.Data.ID, err)
		return err
	}
	if payment == nil {
		u.log.Infof("Webhook for unknown payment %s ignored", notification.Data.ID)
		return nil
	}

	if payment.IsApproved() || payment.IsFinalRejection() {
		return nil
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, payment.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", payment.AppointmentID, err)
		return err
	}

	charge, err := u.paymentGateway.GetPayment(ctx, payment.ExternalID)
	if err != nil {
		u.log.Warnf("Gateway lookup failed for payment %s: %+v", payment.ExternalID, err)
		return err
	}

	return u.applyCharge(ctx, payment, appointment, charge)
}

// applyCharge persists the gateway's latest status, confirms the appointment
// on approval and cancels it on a terminal failure. Statuses the gateway
// reports are stored as-is.
func (u *paymentUsecase) applyCharge(ctx context.Context, payment *entity.Payment, appointment *entity.Appointment, charge *gateway.Charge) error {
	if charge.Status == payment.Status {
		return nil
	}

	oldStatus := payment.Status
	payment.Status = charge.Status
	if len(charge.Raw) > 0 {
		payment.PaymentData = entity.JSON(charge.Raw)
	}

	if err := u.paymentRepo.Update(ctx, u.db, payment); err != nil {
		u.log.Warnf("Failed to update payment %s: %+v", payment.ID, err)
		return err
	}

	if appointment != nil && appointment.IsPendingPayment() {
		switch {
		case payment.IsApproved():
			if err := u.appointmentRepo.UpdateStatus(ctx, u.db, appointment.ID, entity.AppointmentStatusScheduled); err != nil {
				u.log.Warnf("Failed to schedule appointment %s: %+v", appointment.ID, err)
				return err
			}
		case payment.IsFinalRejection():
			// A terminally failed charge releases the reserved slot
			if err := u.appointmentRepo.UpdateStatus(ctx, u.db, appointment.ID, entity.AppointmentStatusCancelled); err != nil {
				u.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
				return err
			}
		}
	}

	if err := u.auditService.LogUpdate(ctx, u.db, nil, entity.AuditActionPaymentUpdate, "payment", payment.ID.String(), oldStatus, payment.Status); err != nil {
		u.log.Warnf("Failed to audit payment update: %+v", err)
	}

	u.log.Infof("Payment %s transitioned: %s -> %s", payment.ID, oldStatus, payment.Status)
	return nil
}

// splitFullName splits a display name into the gateway's first/last fields
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
