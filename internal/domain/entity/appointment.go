package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPendingPayment AppointmentStatus = "pending_payment"
	AppointmentStatusScheduled      AppointmentStatus = "scheduled"
	AppointmentStatusCompleted      AppointmentStatus = "completed"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
)

// Appointment represents a reserved consultation interval.
//
// Status progression: pending_payment -> scheduled (payment approved) or
// pending_payment -> cancelled; scheduled -> cancelled (patient-initiated,
// only while the end time is still in the future); scheduled -> completed /
// no_show (administrative). The unique index on (doctor_id, appointment_date,
// start_time) arbitrates concurrent bookings for the same slot.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_doctor_slot" json:"doctor_id"`
	SpecialtyID     uuid.UUID         `gorm:"type:uuid;not null" json:"specialty_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;uniqueIndex:idx_appointments_doctor_slot" json:"appointment_date"`
	StartTime       string            `gorm:"type:time;not null;uniqueIndex:idx_appointments_doctor_slot" json:"start_time"`
	EndTime         string            `gorm:"type:time;not null" json:"end_time"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'pending_payment';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty      `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Payments  []Payment      `gorm:"foreignKey:AppointmentID" json:"payments,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPendingPayment checks if the appointment is awaiting payment
func (a *Appointment) IsPendingPayment() bool {
	return a.Status == AppointmentStatusPendingPayment
}

// IsScheduled checks if the appointment is confirmed
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsTerminal checks if the appointment reached a final status
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// EndsAt combines the appointment date and end time into a single instant.
// Falls back to end of day when the end time string is malformed.
func (a *Appointment) EndsAt() time.Time {
	t, err := time.Parse("15:04", a.EndTime)
	if err != nil {
		return a.AppointmentDate.Add(24 * time.Hour)
	}
	return time.Date(
		a.AppointmentDate.Year(), a.AppointmentDate.Month(), a.AppointmentDate.Day(),
		t.Hour(), t.Minute(), 0, 0, a.AppointmentDate.Location(),
	)
}

// Schedule marks the appointment as confirmed after an approved payment
func (a *Appointment) Schedule() {
	a.Status = AppointmentStatusScheduled
}

// Cancel marks the appointment as cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
