package usecase

import (
	"context"
	"io"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeAvailabilityRepo serves canned weekly windows.
type fakeAvailabilityRepo struct {
	windows []entity.DoctorAvailability
	err     error
}

func (f *fakeAvailabilityRepo) Create(ctx context.Context, db *gorm.DB, availability *entity.DoctorAvailability) error {
	f.windows = append(f.windows, *availability)
	return nil
}

func (f *fakeAvailabilityRepo) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.DoctorAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []entity.DoctorAvailability
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.DayOfWeek == dayOfWeek {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

func (f *fakeAvailabilityRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows, nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	for i, w := range f.windows {
		if w.ID == id {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeAppointmentRepo keeps appointments in memory.
type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	findErr      error
	createErr    error
	created      []*entity.Appointment
	statusByID   map[uuid.UUID]entity.AppointmentStatus
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	f.created = append(f.created, appointment)
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			appt := f.appointments[i]
			return &appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByDoctorAndDate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []entity.Appointment
	day := date.Format("2006-01-02")
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate.Format("2006-01-02") == day {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	if f.statusByID == nil {
		f.statusByID = make(map[uuid.UUID]entity.AppointmentStatus)
	}
	f.statusByID[id] = status
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
		}
	}
	return nil
}

// fakeDoctorRepo serves a single doctor.
type fakeDoctorRepo struct {
	doctor *entity.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	f.doctor = doctor
	return nil
}

func (f *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	if f.doctor != nil && f.doctor.ID == id {
		return f.doctor, nil
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	if f.doctor == nil {
		return nil, nil
	}
	return []entity.Doctor{*f.doctor}, nil
}

func (f *fakeDoctorRepo) FindAvailableBySpecialty(ctx context.Context, db *gorm.DB, specialtyID *uuid.UUID) ([]entity.Doctor, error) {
	return f.FindAll(ctx, db)
}

func (f *fakeDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	f.doctor = doctor
	return nil
}

func (f *fakeDoctorRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if f.doctor != nil && f.doctor.ID == id {
		f.doctor = nil
		return 1, nil
	}
	return 0, nil
}

// fakeSpecialtyRepo serves a single specialty.
type fakeSpecialtyRepo struct {
	specialty *entity.Specialty
}

func (f *fakeSpecialtyRepo) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	f.specialty = specialty
	return nil
}

func (f *fakeSpecialtyRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Specialty, error) {
	if f.specialty != nil && f.specialty.ID == id {
		return f.specialty, nil
	}
	return nil, nil
}

func (f *fakeSpecialtyRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error) {
	if f.specialty == nil {
		return nil, nil
	}
	return []entity.Specialty{*f.specialty}, nil
}

func (f *fakeSpecialtyRepo) Update(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	f.specialty = specialty
	return nil
}

func (f *fakeSpecialtyRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if f.specialty != nil && f.specialty.ID == id {
		f.specialty = nil
		return 1, nil
	}
	return 0, nil
}

// fakeUserRepo serves a single user.
type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	f.user = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	f.user = user
	return nil
}

// fakePaymentRepo keeps payments in memory.
type fakePaymentRepo struct {
	payments []entity.Payment
	created  []*entity.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, db *gorm.DB, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.created = append(f.created, payment)
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	for i := range f.payments {
		if f.payments[i].ID == id {
			payment := f.payments[i]
			return &payment, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.Payment, error) {
	for i := range f.payments {
		if f.payments[i].ExternalID == externalID {
			payment := f.payments[i]
			return &payment, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, db *gorm.DB, payment *entity.Payment) error {
	for i := range f.payments {
		if f.payments[i].ID == payment.ID {
			f.payments[i] = *payment
			return nil
		}
	}
	return nil
}

// fakeAuditService records actions without touching storage.
type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}
