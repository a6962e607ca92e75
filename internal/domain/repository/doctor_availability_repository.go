package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorAvailabilityRepository interface {
	Create(ctx context.Context, db *gorm.DB, availability *entity.DoctorAvailability) error
	// FindByDoctorAndDay returns every recurring window the doctor has on the
	// given weekday (0=Sunday .. 6=Saturday), ordered by start time.
	FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.DoctorAvailability, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error)
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
