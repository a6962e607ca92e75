package repository

import (
	"context"
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor").Preload("Specialty").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.WithContext(ctx).
		Preload("Doctor").Preload("Specialty").
		Where("patient_id = ?", patientID)

	if filter != nil {
		switch filter.Tab {
		case entity.AppointmentTabUpcoming:
			query = query.
				Where("status IN ? AND appointment_date >= ?",
					[]entity.AppointmentStatus{entity.AppointmentStatusPendingPayment, entity.AppointmentStatusScheduled},
					filter.Today).
				Order("appointment_date ASC, start_time ASC")
		case entity.AppointmentTabPast:
			query = query.
				Where("status IN ? OR (status = ? AND appointment_date < ?)",
					[]entity.AppointmentStatus{entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled, entity.AppointmentStatusNoShow},
					entity.AppointmentStatusScheduled,
					filter.Today).
				Order("appointment_date DESC, start_time DESC")
		default:
			query = query.Order("appointment_date DESC, start_time DESC")
		}
	} else {
		query = query.Order("appointment_date DESC, start_time DESC")
	}

	err := query.Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
