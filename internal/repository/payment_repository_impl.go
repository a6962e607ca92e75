package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(ctx context.Context, db *gorm.DB, payment *entity.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.WithContext(ctx).Preload("Appointment").Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.WithContext(ctx).Where("external_id = ?", externalID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, db *gorm.DB, payment *entity.Payment) error {
	return db.WithContext(ctx).Omit("Appointment").Save(payment).Error
}
