package repository

import (
	"context"
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, auditLog *entity.AuditLog) error {
	return db.WithContext(ctx).Create(auditLog).Error
}

func (r *auditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var auditLog entity.AuditLog
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&auditLog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auditLog, nil
}

func (r *auditLogRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
