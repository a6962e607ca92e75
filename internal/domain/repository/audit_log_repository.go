package repository

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, auditLog *entity.AuditLog) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error)
}
