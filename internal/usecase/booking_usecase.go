package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentNotCancellable   = errors.New("appointment can no longer be cancelled")
	ErrAppointmentAlreadyStarted   = errors.New("appointment has already taken place")
	ErrAppointmentDatePast         = errors.New("cannot book a past date")
	ErrInvalidSlot                 = errors.New("unknown slot id")
	ErrSlotUnavailable             = errors.New("slot is not available for this doctor and date")
	ErrSlotAlreadyBooked           = errors.New("slot was just booked by another patient")
	ErrDoctorNotFound              = errors.New("doctor not found")
	ErrDoctorUnavailable           = errors.New("doctor is not accepting appointments")
	ErrSpecialtyNotFound           = errors.New("specialty not found")
)

type BookingUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, tab entity.AppointmentTab) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
}

type bookingUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorRepo          repository.DoctorRepository
	specialtyRepo       repository.SpecialtyRepository
	availabilityUsecase AvailabilityUsecase
	auditService        service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	availabilityUsecase AvailabilityUsecase,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		doctorRepo:          doctorRepo,
		specialtyRepo:       specialtyRepo,
		availabilityUsecase: availabilityUsecase,
		auditService:        auditService,
	}
}

// CreateAppointment books a template slot for the logged-in patient with
// status pending_payment.
//
// The slot's availability is recomputed at write time, but two patients can
// still pass that check simultaneously; the unique index on
// (doctor_id, appointment_date, start_time) decides the race and the loser
// gets ErrSlotAlreadyBooked.
func (u *bookingUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrAppointmentDatePast
	}

	slot := entity.SlotByID(req.SlotID)
	if slot == nil {
		return nil, ErrInvalidSlot
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Available != nil && !*doctor.Available {
		return nil, ErrDoctorUnavailable
	}

	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %s: %+v", req.SpecialtyID, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	// Recheck the slot against current windows and bookings
	slots, err := u.availabilityUsecase.GetDaySlots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	available := false
	for _, s := range slots.Slots {
		if s.SlotID == req.SlotID {
			available = s.Available
			break
		}
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID:       userID,
		DoctorID:        req.DoctorID,
		SpecialtyID:     req.SpecialtyID,
		AppointmentDate: date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Status:          entity.AppointmentStatusPendingPayment,
		Notes:           req.Notes,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	response.Doctor = converter.DoctorToResponse(doctor)
	response.Specialty = converter.SpecialtyToResponse(specialty)

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response); err != nil {
		u.log.Warnf("Failed to audit appointment create: %+v", err)
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, slot=%s", appointment.ID, req.DoctorID, req.Date, req.SlotID)
	return response, nil
}

// GetMyAppointments returns the logged-in patient's appointments, split into
// upcoming and past the way the account area tabs show them.
func (u *bookingUsecase) GetMyAppointments(ctx context.Context, tab entity.AppointmentTab) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if tab != entity.AppointmentTabPast {
		tab = entity.AppointmentTabUpcoming
	}

	filter := &entity.AppointmentFilter{
		Tab:   tab,
		Today: time.Now().Format("2006-01-02"),
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, userID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment cancels the patient's own appointment.
//
// pending_payment cancels unconditionally; scheduled cancels only while the
// appointment's end time is still in the future; terminal statuses are
// rejected.
func (u *bookingUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.PatientID != userID {
		return ErrAppointmentNotOwned
	}

	switch {
	case appointment.Status == entity.AppointmentStatusCancelled:
		return ErrAppointmentAlreadyCancelled
	case appointment.IsTerminal():
		return ErrAppointmentNotCancellable
	case appointment.IsScheduled() && !appointment.EndsAt().After(time.Now()):
		return ErrAppointmentAlreadyStarted
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, u.db, appointmentID, entity.AppointmentStatusCancelled); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), string(appointment.Status), string(entity.AppointmentStatusCancelled)); err != nil {
		u.log.Warnf("Failed to audit appointment cancel: %+v", err)
	}

	u.log.Infof("Appointment cancelled: id=%s, patient=%s", appointmentID, userID)
	return nil
}
