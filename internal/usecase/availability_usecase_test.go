package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday (weekday 1)
const testDate = "2026-09-07"

func mondayWindow(doctorID uuid.UUID, start, end string) entity.DoctorAvailability {
	return entity.DoctorAvailability{
		DoctorID:  doctorID,
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
	}
}

func mondayAppointment(doctorID uuid.UUID, start, end string, status entity.AppointmentStatus) entity.Appointment {
	date, _ := time.Parse("2006-01-02", testDate)
	return entity.Appointment{
		ID:              uuid.New(),
		PatientID:       uuid.New(),
		DoctorID:        doctorID,
		SpecialtyID:     uuid.New(),
		AppointmentDate: date,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
	}
}

func newAvailabilityUsecase(availabilityRepo *fakeAvailabilityRepo, appointmentRepo *fakeAppointmentRepo) AvailabilityUsecase {
	return NewAvailabilityUsecase(nil, testLogger(), availabilityRepo, appointmentRepo)
}

func TestGetDaySlots_InvalidDate(t *testing.T) {
	u := newAvailabilityUsecase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	_, err := u.GetDaySlots(context.Background(), uuid.New(), "07/09/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetDaySlots_NoWindowsMeansDayOff(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
	assert.Equal(t, doctorID, result.DoctorID)
	assert.Equal(t, testDate, result.Date)
}

func TestGetDaySlots_FullDayWindowAllAvailable(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
		&fakeAppointmentRepo{},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)
	for _, slot := range result.Slots {
		assert.True(t, slot.Available, "slot %s should be available", slot.SlotID)
	}
}

func TestGetDaySlots_MorningOnlyWindow(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "12:00")}},
		&fakeAppointmentRepo{},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)

	// Morning slots 1-4 fall inside the window, afternoon slots 5-8 do not
	for _, slot := range result.Slots[:4] {
		assert.True(t, slot.Available, "slot %s should be available", slot.SlotID)
	}
	for _, slot := range result.Slots[4:] {
		assert.False(t, slot.Available, "slot %s should be outside the window", slot.SlotID)
	}
}

func TestGetDaySlots_SplitShiftsUnion(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{
			mondayWindow(doctorID, "08:00", "12:00"),
			mondayWindow(doctorID, "14:00", "18:00"),
		}},
		&fakeAppointmentRepo{},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)
	for _, slot := range result.Slots {
		assert.True(t, slot.Available, "slot %s should be available across both shifts", slot.SlotID)
	}
}

func TestGetDaySlots_BookedSlotBlocksExactlyOne(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
		&fakeAppointmentRepo{appointments: []entity.Appointment{
			mondayAppointment(doctorID, "09:00", "10:00", entity.AppointmentStatusScheduled),
		}},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)

	for _, slot := range result.Slots {
		if slot.SlotID == "2" {
			assert.False(t, slot.Available, "booked 09:00-10:00 slot should be taken")
		} else {
			assert.True(t, slot.Available, "slot %s should stay available", slot.SlotID)
		}
	}
}

func TestGetDaySlots_AllStatusesOccupy(t *testing.T) {
	doctorID := uuid.New()

	for _, status := range []entity.AppointmentStatus{
		entity.AppointmentStatusPendingPayment,
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusNoShow,
	} {
		u := newAvailabilityUsecase(
			&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
			&fakeAppointmentRepo{appointments: []entity.Appointment{
				mondayAppointment(doctorID, "08:00", "09:00", status),
			}},
		)

		result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
		require.NoError(t, err)
		assert.False(t, result.Slots[0].Available, "status %s should occupy the slot", status)
	}
}

func TestGetDaySlots_NonAlignedBookingBlocksNothing(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
		&fakeAppointmentRepo{appointments: []entity.Appointment{
			mondayAppointment(doctorID, "08:30", "09:30", entity.AppointmentStatusScheduled),
		}},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	for _, slot := range result.Slots {
		assert.True(t, slot.Available, "non-aligned booking should not block slot %s", slot.SlotID)
	}
}

func TestGetDaySlots_SecondsComponentAccepted(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00:00", "12:00:00")}},
		&fakeAppointmentRepo{appointments: []entity.Appointment{
			mondayAppointment(doctorID, "09:00:00", "10:00:00", entity.AppointmentStatusScheduled),
		}},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	assert.True(t, result.Slots[0].Available)
	assert.False(t, result.Slots[1].Available)
}

func TestGetDaySlots_MalformedWindowTime(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "junk", "12:00")}},
		&fakeAppointmentRepo{},
	)

	_, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	assert.ErrorIs(t, err, ErrInvalidTimeData)
}

func TestGetDaySlots_ReversedWindow(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "12:00", "08:00")}},
		&fakeAppointmentRepo{},
	)

	_, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	assert.ErrorIs(t, err, ErrInvalidTimeData)
}

func TestGetDaySlots_MalformedAppointmentRowSkipped(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
		&fakeAppointmentRepo{appointments: []entity.Appointment{
			mondayAppointment(doctorID, "broken", "also broken", entity.AppointmentStatusScheduled),
			mondayAppointment(doctorID, "10:00", "11:00", entity.AppointmentStatusScheduled),
		}},
	)

	result, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)

	// The corrupt row is ignored, the valid one still blocks slot 3
	for _, slot := range result.Slots {
		if slot.SlotID == "3" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available, "slot %s should stay available", slot.SlotID)
		}
	}
}

func TestGetDaySlots_LookupFailure(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{err: errors.New("connection refused")},
		&fakeAppointmentRepo{},
	)

	_, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	assert.ErrorIs(t, err, ErrAvailabilityLookup)
}

func TestGetDaySlots_AppointmentLookupFailure(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "18:00")}},
		&fakeAppointmentRepo{findErr: errors.New("connection refused")},
	)

	_, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	assert.ErrorIs(t, err, ErrAvailabilityLookup)
}

func TestGetDaySlots_Idempotent(t *testing.T) {
	doctorID := uuid.New()
	u := newAvailabilityUsecase(
		&fakeAvailabilityRepo{windows: []entity.DoctorAvailability{mondayWindow(doctorID, "08:00", "12:00")}},
		&fakeAppointmentRepo{appointments: []entity.Appointment{
			mondayAppointment(doctorID, "09:00", "10:00", entity.AppointmentStatusPendingPayment),
		}},
	)

	first, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	second, err := u.GetDaySlots(context.Background(), doctorID, testDate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"08:00:00", 480, false},
		{"23:59", 1439, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"12", 0, true},
	}

	for _, tt := range tests {
		got, err := minutesOfDay(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
		} else {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}
