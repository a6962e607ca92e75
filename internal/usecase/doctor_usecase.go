package usecase

import (
	"context"
	"errors"

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
	ErrDoctorEmailTaken    = errors.New("doctor email already exists")
	ErrDoctorHasBookings   = errors.New("doctor has appointments and cannot be deleted")
	ErrWindowNotFound      = errors.New("availability window not found")
	ErrInvalidWindowTimes  = errors.New("window times must be HH:MM with start before end")
	ErrUnknownSpecialtyRef = errors.New("referenced specialty does not exist")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context) (*dto.DoctorListResponse, error)
	GetAvailable(ctx context.Context, specialtyID *uuid.UUID) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	RemoveAvailability(ctx context.Context, doctorID uuid.UUID, windowID int) error
}

type doctorUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	doctorRepo       repository.DoctorRepository
	availabilityRepo repository.DoctorAvailabilityRepository
	specialtyRepo    repository.SpecialtyRepository
	auditService     service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	availabilityRepo repository.DoctorAvailabilityRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		specialtyRepo:    specialtyRepo,
		auditService:     auditService,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.SpecialtyID != nil {
		specialty, err := u.specialtyRepo.FindByID(ctx, u.db, *req.SpecialtyID)
		if err != nil {
			u.log.Warnf("Failed to find specialty %s: %+v", *req.SpecialtyID, err)
			return nil, err
		}
		if specialty == nil {
			return nil, ErrUnknownSpecialtyRef
		}
	}

	available := true
	doctor := &entity.Doctor{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		SpecialtyID: req.SpecialtyID,
		Biography:   req.Biography,
		ImageURL:    req.ImageURL,
		Available:   &available,
	}

	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailTaken
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), doctor); err != nil {
		u.log.Warnf("Failed to audit doctor create: %+v", err)
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetAvailable lists doctors accepting appointments, optionally filtered by
// specialty. This backs the public doctor picker in the booking flow.
func (u *doctorUsecase) GetAvailable(ctx context.Context, specialtyID *uuid.UUID) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAvailableBySpecialty(ctx, u.db, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to list available doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	before := *doctor

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.PhoneNumber != "" {
		doctor.PhoneNumber = req.PhoneNumber
	}
	if req.SpecialtyID != nil {
		specialty, err := u.specialtyRepo.FindByID(ctx, u.db, *req.SpecialtyID)
		if err != nil {
			return nil, err
		}
		if specialty == nil {
			return nil, ErrUnknownSpecialtyRef
		}
		doctor.SpecialtyID = req.SpecialtyID
	}
	if req.Biography != "" {
		doctor.Biography = req.Biography
	}
	if req.ImageURL != "" {
		doctor.ImageURL = req.ImageURL
	}
	if req.Available != nil {
		doctor.Available = req.Available
	}

	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailTaken
		}
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), before, doctor); err != nil {
		u.log.Warnf("Failed to audit doctor update: %+v", err)
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := u.doctorRepo.Delete(ctx, u.db, id)
	if err != nil {
		if isForeignKeyError(err, "doctor") {
			return ErrDoctorHasBookings
		}
		u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionDoctorDelete, "doctor", id.String(), nil); err != nil {
		u.log.Warnf("Failed to audit doctor delete: %+v", err)
	}
	return nil
}

func (u *doctorUsecase) AddAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start, err := minutesOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidWindowTimes
	}
	end, err := minutesOfDay(req.EndTime)
	if err != nil {
		return nil, ErrInvalidWindowTimes
	}
	if start >= end {
		return nil, ErrInvalidWindowTimes
	}

	window := &entity.DoctorAvailability{
		DoctorID:  doctorID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.availabilityRepo.Create(ctx, u.db, window); err != nil {
		u.log.Warnf("Failed to create availability window: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionAvailabilityCreate, "doctor_availability", doctorID.String(), window); err != nil {
		u.log.Warnf("Failed to audit availability create: %+v", err)
	}

	return converter.AvailabilityToResponse(window), nil
}

func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	windows, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Windows: converter.AvailabilitiesToResponses(windows),
		Total:   len(windows),
	}, nil
}

func (u *doctorUsecase) RemoveAvailability(ctx context.Context, doctorID uuid.UUID, windowID int) error {
	windows, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return err
	}

	owned := false
	for _, w := range windows {
		if w.ID == windowID {
			owned = true
			break
		}
	}
	if !owned {
		return ErrWindowNotFound
	}

	rows, err := u.availabilityRepo.Delete(ctx, u.db, windowID)
	if err != nil {
		u.log.Warnf("Failed to delete availability window %d: %+v", windowID, err)
		return err
	}
	if rows == 0 {
		return ErrWindowNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionAvailabilityDelete, "doctor_availability", doctorID.String(), nil); err != nil {
		u.log.Warnf("Failed to audit availability delete: %+v", err)
	}
	return nil
}
