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
	ErrSpecialtyNameTaken = errors.New("specialty name already exists")
	ErrSpecialtyInUse     = errors.New("specialty is referenced by doctors or appointments")
)

type SpecialtyUsecase interface {
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetAll(ctx context.Context) (*dto.SpecialtyListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func (u *specialtyUsecase) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := u.specialtyRepo.Create(ctx, u.db, specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyNameTaken
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionSpecialtyCreate, "specialty", specialty.ID.String(), specialty); err != nil {
		u.log.Warnf("Failed to audit specialty create: %+v", err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAll(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %s: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %s: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	before := *specialty

	if req.Name != "" {
		specialty.Name = req.Name
	}
	if req.Description != "" {
		specialty.Description = req.Description
	}
	if req.Price != nil {
		specialty.Price = *req.Price
	}

	if err := u.specialtyRepo.Update(ctx, u.db, specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyNameTaken
		}
		u.log.Warnf("Failed to update specialty %s: %+v", id, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionSpecialtyUpdate, "specialty", specialty.ID.String(), before, specialty); err != nil {
		u.log.Warnf("Failed to audit specialty update: %+v", err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := u.specialtyRepo.Delete(ctx, u.db, id)
	if err != nil {
		if isForeignKeyError(err, "specialty") {
			return ErrSpecialtyInUse
		}
		u.log.Warnf("Failed to delete specialty %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrSpecialtyNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionSpecialtyDelete, "specialty", id.String(), nil); err != nil {
		u.log.Warnf("Failed to audit specialty delete: %+v", err)
	}
	return nil
}
