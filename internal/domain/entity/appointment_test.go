package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentEndsAt(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	appointment := &Appointment{AppointmentDate: date, EndTime: "10:00"}

	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), appointment.EndsAt())
}

func TestAppointmentEndsAt_MalformedTime(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	appointment := &Appointment{AppointmentDate: date, EndTime: "not-a-time"}

	// Malformed end times push the cutoff to end of day instead of panicking
	assert.Equal(t, date.Add(24*time.Hour), appointment.EndsAt())
}

func TestAppointmentIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	}
	for _, status := range terminal {
		appointment := &Appointment{Status: status}
		assert.True(t, appointment.IsTerminal(), "status %s should be terminal", status)
	}

	for _, status := range []AppointmentStatus{AppointmentStatusPendingPayment, AppointmentStatusScheduled} {
		appointment := &Appointment{Status: status}
		assert.False(t, appointment.IsTerminal(), "status %s should not be terminal", status)
	}
}

func TestAppointmentStatusHelpers(t *testing.T) {
	appointment := &Appointment{Status: AppointmentStatusPendingPayment}
	assert.True(t, appointment.IsPendingPayment())
	assert.False(t, appointment.IsScheduled())

	appointment.Schedule()
	assert.True(t, appointment.IsScheduled())
	assert.False(t, appointment.IsPendingPayment())

	appointment.Cancel()
	assert.Equal(t, AppointmentStatusCancelled, appointment.Status)
	assert.True(t, appointment.IsTerminal())
}

func TestPaymentIsFinalRejection(t *testing.T) {
	for _, status := range []string{PaymentStatusRejected, PaymentStatusCancelled, PaymentStatusRefunded} {
		payment := &Payment{Status: status}
		assert.True(t, payment.IsFinalRejection(), "status %s should be final", status)
	}

	for _, status := range []string{PaymentStatusPending, PaymentStatusInProcess, PaymentStatusApproved} {
		payment := &Payment{Status: status}
		assert.False(t, payment.IsFinalRejection(), "status %s should not be final", status)
	}
}
