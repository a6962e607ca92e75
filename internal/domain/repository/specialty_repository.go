package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error)
	Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
