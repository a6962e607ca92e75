package entity

// AppointmentTab selects which bucket of a patient's appointments to list.
type AppointmentTab string

const (
	AppointmentTabUpcoming AppointmentTab = "upcoming"
	AppointmentTabPast     AppointmentTab = "past"
)

// AppointmentFilter is a domain-level filter for querying a patient's
// appointments. Used by the repository layer to avoid coupling with delivery
// DTOs.
type AppointmentFilter struct {
	Tab   AppointmentTab
	Today string // Format: YYYY-MM-DD, boundary between upcoming and past
}
