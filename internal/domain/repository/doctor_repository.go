package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	// FindAvailableBySpecialty returns doctors accepting appointments,
	// optionally restricted to a specialty. Used by the booking wizard.
	FindAvailableBySpecialty(ctx context.Context, db *gorm.DB, specialtyID *uuid.UUID) ([]entity.Doctor, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
