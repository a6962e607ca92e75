package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("Specialty").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Preload("Specialty").Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindAvailableBySpecialty(ctx context.Context, db *gorm.DB, specialtyID *uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.WithContext(ctx).Preload("Specialty").Where("available = ?", true)
	if specialtyID != nil {
		query = query.Where("specialty_id = ?", *specialtyID)
	}
	err := query.Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("Specialty").Save(doctor).Error
}

func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return affected.RowsAffected, affected.Error
}
