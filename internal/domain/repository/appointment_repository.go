package repository

import (
	"context"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByDoctorAndDate returns the doctor's appointments on a calendar
	// date regardless of status. Feeds slot availability computation.
	FindByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
}
