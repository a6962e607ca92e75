package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, db *gorm.DB, payment *entity.Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Payment, error)
	FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.Payment, error)
	Update(ctx context.Context, db *gorm.DB, payment *entity.Payment) error
}
