package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-api/config"
	deliveryHttp "clinic-booking-api/internal/delivery/http"
	"clinic-booking-api/internal/delivery/http/handler"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/gateway/mercadopago"
	"clinic-booking-api/internal/infrastructure/cache"
	"clinic-booking-api/internal/infrastructure/database"
	"clinic-booking-api/internal/repository"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/jwt"
	"clinic-booking-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	doctorRepo := repository.NewDoctorRepository()
	availabilityRepo := repository.NewDoctorAvailabilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	paymentRepo := repository.NewPaymentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services and gateways
	auditService := service.NewAuditService(log, auditLogRepo)
	paymentGateway := mercadopago.NewClient(cfg.MercadoPago, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, jwtService, redisClient)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, userRepo, patientProfileRepo, auditService)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, specialtyRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, availabilityRepo, specialtyRepo, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityRepo, appointmentRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, appointmentRepo, doctorRepo, specialtyRepo, availabilityUsecase, auditService)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, paymentRepo, appointmentRepo, specialtyRepo, userRepo, paymentGateway, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	patientHandler := handler.NewPatientHandler(patientProfileUsecase, customValidator)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, log)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, customValidator, log)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		specialtyHandler,
		doctorHandler,
		availabilityHandler,
		bookingHandler,
		paymentHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
