package http

import (
	"net/http"

	"clinic-booking-api/internal/delivery/http/handler"
	"clinic-booking-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	specialtyHandler    *handler.SpecialtyHandler
	doctorHandler       *handler.DoctorHandler
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	paymentHandler      *handler.PaymentHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	specialtyHandler *handler.SpecialtyHandler,
	doctorHandler *handler.DoctorHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	paymentHandler *handler.PaymentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		specialtyHandler:    specialtyHandler,
		doctorHandler:       doctorHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		paymentHandler:      paymentHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalog: the booking wizard browses these before login
	api.HandleFunc("/specialties", r.specialtyHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{id}", r.specialtyHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.doctorHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.availabilityHandler.GetDaySlots).Methods(http.MethodGet)

	// Gateway webhook (public, the gateway authenticates by external id lookup)
	api.HandleFunc("/payments/webhook", r.paymentHandler.Webhook).Methods(http.MethodPost)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/patients/me", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/patients/me", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/appointments", r.bookingHandler.CreateAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.bookingHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.bookingHandler.CancelAppointment).Methods(http.MethodDelete)
	patient.HandleFunc("/payments", r.paymentHandler.CreatePayment).Methods(http.MethodPost)
	patient.HandleFunc("/payments/{id}/check", r.paymentHandler.CheckPayment).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Specialty management (admin)
	admin.HandleFunc("/specialties", r.specialtyHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Delete).Methods(http.MethodDelete)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id}/availability", r.doctorHandler.AddAvailability).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/availability/{windowId}", r.doctorHandler.RemoveAvailability).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
