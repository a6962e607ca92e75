package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway answers with a canned charge.
type fakeGateway struct {
	charge    *gateway.Charge
	createErr error
	getErr    error
	requests  []*gateway.ChargeRequest
}

func (f *fakeGateway) CreatePayment(ctx context.Context, req *gateway.ChargeRequest) (*gateway.Charge, error) {
	f.requests = append(f.requests, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.charge, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, externalID string) (*gateway.Charge, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.charge, nil
}

type paymentFixture struct {
	patientID       uuid.UUID
	appointment     entity.Appointment
	specialty       *entity.Specialty
	appointmentRepo *fakeAppointmentRepo
	paymentRepo     *fakePaymentRepo
	gateway         *fakeGateway
	audit           *fakeAuditService
	usecase         PaymentUsecase
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	patientID := uuid.New()
	specialty := &entity.Specialty{ID: uuid.New(), Name: "Dermatology", Price: decimal.NewFromInt(180)}
	appointment := entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        uuid.New(),
		SpecialtyID:     specialty.ID,
		AppointmentDate: time.Now().AddDate(0, 0, 5),
		StartTime:       "10:00",
		EndTime:         "11:00",
		Status:          entity.AppointmentStatusPendingPayment,
	}

	appointmentRepo := &fakeAppointmentRepo{appointments: []entity.Appointment{appointment}}
	paymentRepo := &fakePaymentRepo{}
	gw := &fakeGateway{}
	audit := &fakeAuditService{}
	userRepo := &fakeUserRepo{user: &entity.User{
		ID:       patientID,
		Email:    "ana.lima@example.com",
		FullName: "Ana Lima",
		RoleID:   entity.RoleIDPatient,
	}}

	return &paymentFixture{
		patientID:       patientID,
		appointment:     appointment,
		specialty:       specialty,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		gateway:         gw,
		audit:           audit,
		usecase: NewPaymentUsecase(
			nil, testLogger(),
			paymentRepo,
			appointmentRepo,
			&fakeSpecialtyRepo{specialty: specialty},
			userRepo,
			gw,
			audit,
		),
	}
}

func (f *paymentFixture) ctx() context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, f.patientID)
}

func TestCreatePayment_ApprovedSchedulesAppointment(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.charge = &gateway.Charge{
		ExternalID: "mp-1001",
		Status:     entity.PaymentStatusApproved,
		Raw:        map[string]interface{}{"id": float64(1001)},
	}

	result, err := f.usecase.CreatePayment(f.ctx(), &dto.CreatePaymentRequest{
		AppointmentID: f.appointment.ID,
		Method:        "credit_card",
		CardToken:     "tok-abc",
		CardMethodID:  "visa",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusApproved, result.Status)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.appointmentRepo.statusByID[f.appointment.ID])
	assert.Contains(t, f.audit.actions, entity.AuditActionPaymentCreate)

	// The charge uses the specialty fee and the payer's split name
	require.Len(t, f.gateway.requests, 1)
	assert.True(t, f.specialty.Price.Equal(f.gateway.requests[0].Amount))
	assert.Equal(t, "Ana", f.gateway.requests[0].PayerFirstName)
	assert.Equal(t, "Lima", f.gateway.requests[0].PayerLastName)
}

func TestCreatePayment_PendingPixLeavesAppointmentAlone(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.charge = &gateway.Charge{
		ExternalID:      "mp-1002",
		Status:          entity.PaymentStatusPending,
		PixQRCode:       "00020126pix-code",
		PixQRCodeBase64: "aW1hZ2U=",
		Raw: map[string]interface{}{
			"point_of_interaction": map[string]interface{}{
				"transaction_data": map[string]interface{}{
					"qr_code":        "00020126pix-code",
					"qr_code_base64": "aW1hZ2U=",
				},
			},
		},
	}

	result, err := f.usecase.CreatePayment(f.ctx(), &dto.CreatePaymentRequest{
		AppointmentID: f.appointment.ID,
		Method:        "pix",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPending, result.Status)
	assert.Equal(t, "00020126pix-code", result.PixQRCode)
	_, scheduled := f.appointmentRepo.statusByID[f.appointment.ID]
	assert.False(t, scheduled, "pending charge must not confirm the appointment")
}

func TestCreatePayment_NotOwned(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, uuid.New())

	_, err := f.usecase.CreatePayment(ctx, &dto.CreatePaymentRequest{
		AppointmentID: f.appointment.ID,
		Method:        "pix",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCreatePayment_NotPendingPayment(t *testing.T) {
	f := newPaymentFixture(t)
	f.appointmentRepo.appointments[0].Status = entity.AppointmentStatusScheduled

	_, err := f.usecase.CreatePayment(f.ctx(), &dto.CreatePaymentRequest{
		AppointmentID: f.appointment.ID,
		Method:        "pix",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotPayable)
}

func TestCreatePayment_GatewayFailure(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.createErr = errors.New("gateway timeout")

	_, err := f.usecase.CreatePayment(f.ctx(), &dto.CreatePaymentRequest{
		AppointmentID: f.appointment.ID,
		Method:        "pix",
	})
	assert.Error(t, err)
	assert.Empty(t, f.paymentRepo.created, "no payment row without a gateway charge")
}

func TestCheckPayment_TransitionsToApproved(t *testing.T) {
	f := newPaymentFixture(t)
	f.paymentRepo.payments = []entity.Payment{{
		ID:            uuid.New(),
		AppointmentID: f.appointment.ID,
		Amount:        f.specialty.Price,
		Method:        entity.PaymentMethodPix,
		Status:        entity.PaymentStatusPending,
		ExternalID:    "mp-2001",
	}}
	f.gateway.charge = &gateway.Charge{ExternalID: "mp-2001", Status: entity.PaymentStatusApproved}

	result, err := f.usecase.CheckPayment(f.ctx(), f.paymentRepo.payments[0].ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusApproved, result.Status)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.appointmentRepo.statusByID[f.appointment.ID])
	assert.Contains(t, f.audit.actions, entity.AuditActionPaymentUpdate)
}

func TestCheckPayment_SettledSkipsGateway(t *testing.T) {
	f := newPaymentFixture(t)
	f.paymentRepo.payments = []entity.Payment{{
		ID:            uuid.New(),
		AppointmentID: f.appointment.ID,
		Status:        entity.PaymentStatusApproved,
		ExternalID:    "mp-2002",
	}}
	f.gateway.getErr = errors.New("must not be called")

	result, err := f.usecase.CheckPayment(f.ctx(), f.paymentRepo.payments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusApproved, result.Status)
}

func TestProcessNotification_ApprovesAndSchedules(t *testing.T) {
	f := newPaymentFixture(t)
	f.paymentRepo.payments = []entity.Payment{{
		ID:            uuid.New(),
		AppointmentID: f.appointment.ID,
		Status:        entity.PaymentStatusPending,
		ExternalID:    "mp-3001",
	}}
	f.gateway.charge = &gateway.Charge{ExternalID: "mp-3001", Status: entity.PaymentStatusApproved}

	err := f.usecase.ProcessNotification(context.Background(), &dto.WebhookNotification{
		Action: "payment.updated",
		Data:   dto.WebhookEventData{ID: "mp-3001"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.appointmentRepo.statusByID[f.appointment.ID])
}

func TestProcessNotification_UnknownPaymentIgnored(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.usecase.ProcessNotification(context.Background(), &dto.WebhookNotification{
		Action: "payment.updated",
		Data:   dto.WebhookEventData{ID: "no-such-payment"},
	})
	assert.NoError(t, err)
}

func TestProcessNotification_RejectedCancelsAppointment(t *testing.T) {
	f := newPaymentFixture(t)
	f.paymentRepo.payments = []entity.Payment{{
		ID:            uuid.New(),
		AppointmentID: f.appointment.ID,
		Status:        entity.PaymentStatusPending,
		ExternalID:    "mp-3002",
	}}
	f.gateway.charge = &gateway.Charge{ExternalID: "mp-3002", Status: entity.PaymentStatusRejected}

	err := f.usecase.ProcessNotification(context.Background(), &dto.WebhookNotification{
		Action: "payment.updated",
		Data:   dto.WebhookEventData{ID: "mp-3002"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusCancelled, f.appointmentRepo.statusByID[f.appointment.ID],
		"a terminally failed charge releases the slot")
	assert.Equal(t, entity.PaymentStatusRejected, f.paymentRepo.payments[0].Status)
}

func TestSplitFullName(t *testing.T) {
	first, last := splitFullName("Ana Maria Lima")
	assert.Equal(t, "Ana", first)
	assert.Equal(t, "Maria Lima", last)

	first, last = splitFullName("Ana")
	assert.Equal(t, "Ana", first)
	assert.Empty(t, last)

	first, last = splitFullName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
