package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorAvailabilityRepository struct{}

func NewDoctorAvailabilityRepository() domainRepo.DoctorAvailabilityRepository {
	return &doctorAvailabilityRepository{}
}

func (r *doctorAvailabilityRepository) Create(ctx context.Context, db *gorm.DB, availability *entity.DoctorAvailability) error {
	return db.WithContext(ctx).Create(availability).Error
}

func (r *doctorAvailabilityRepository) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.DoctorAvailability, error) {
	var rows []entity.DoctorAvailability
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *doctorAvailabilityRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	var rows []entity.DoctorAvailability
	err := db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *doctorAvailabilityRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	affected := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DoctorAvailability{})
	return affected.RowsAffected, affected.Error
}
