package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	return db.WithContext(ctx).Create(specialty).Error
}

func (r *specialtyRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.WithContext(ctx).Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.WithContext(ctx).Order("name ASC").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	return db.WithContext(ctx).Save(specialty).Error
}

func (r *specialtyRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Specialty{})
	return affected.RowsAffected, affected.Error
}
