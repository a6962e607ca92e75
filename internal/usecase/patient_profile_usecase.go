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

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound   = errors.New("patient profile not found")
	ErrWrongOldPassword  = errors.New("old password does not match")
	ErrOldPasswordNeeded = errors.New("old password is required to change password")
)

type PatientProfileUsecase interface {
	GetProfile(ctx context.Context) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetProfile(ctx context.Context) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile, err := u.patientProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return converter.PatientProfileToResponse(profile, user), nil
}

// UpdateProfile applies the patient's self-service edits. Password changes
// require the current password to match first.
func (u *patientProfileUsecase) UpdateProfile(ctx context.Context, req *dto.PatientUpdateSelfRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile, err := u.patientProfileRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if req.Password != "" {
		if req.OldPassword == "" {
			return nil, ErrOldPasswordNeeded
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return nil, ErrWrongOldPassword
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)

		if err := u.userRepo.Update(ctx, tx, user); err != nil {
			u.log.Warnf("Failed to update user %s: %+v", userID, err)
			return nil, err
		}
	}

	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", userID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionProfileUpdate, "patient_profile", userID.String(), nil, profile); err != nil {
		u.log.Warnf("Failed to audit profile update: %+v", err)
	}

	return converter.PatientProfileToResponse(profile, user), nil
}
