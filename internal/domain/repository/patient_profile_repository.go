package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
}
