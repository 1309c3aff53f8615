package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-booking/config"
	deliveryHttp "go-clinic-booking/internal/delivery/http"
	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/infrastructure/cache"
	"go-clinic-booking/internal/infrastructure/database"
	"go-clinic-booking/internal/repository"
	"go-clinic-booking/internal/scheduling"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/validator"

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
	SlotCache   *service.SlotCacheService
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

	// Compile the clinic calendar up front so a bad configuration fails fast
	calendar, err := scheduling.NewCalendar(scheduling.Settings{
		OpenTime:        cfg.Clinic.OpenTime,
		CloseTime:       cfg.Clinic.CloseTime,
		LunchStartTime:  cfg.Clinic.LunchStartTime,
		LunchEndTime:    cfg.Clinic.LunchEndTime,
		OperatingDays:   cfg.Clinic.OperatingDays,
		SlotInterval:    cfg.Clinic.SlotInterval,
		CapacityUnit:    cfg.Clinic.CapacityUnit,
		DefaultCapacity: cfg.Clinic.DefaultCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid clinic calendar: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, slotCache := initializeServer(cfg, db, redisClient, calendar)
	app.Server = server
	app.SlotCache = slotCache

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, calendar *scheduling.Calendar) (*http.Server, *service.SlotCacheService) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	patientRepo := repository.NewPatientRepository()
	capacitySlotRepo := repository.NewCapacitySlotRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	slotCache := service.NewSlotCacheService(db, redisClient, log, capacitySlotRepo)
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, calendar, cfg.Clinic, appointmentRepo, doctorRepo, treatmentRepo, patientRepo, slotCache)
	adminUsecase := usecase.NewAppointmentAdminUsecase(db, log, appointmentRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, auditService)
	treatmentUsecase := usecase.NewTreatmentUsecase(db, log, calendar, treatmentRepo, auditService)
	capacitySlotUsecase := usecase.NewCapacitySlotUsecase(db, log, calendar, capacitySlotRepo, slotCache, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	adminAppointmentHandler := handler.NewAdminAppointmentHandler(adminUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	treatmentHandler := handler.NewTreatmentHandler(treatmentUsecase, customValidator)
	capacitySlotHandler := handler.NewCapacitySlotHandler(capacitySlotUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, adminAppointmentHandler, doctorHandler, treatmentHandler, capacitySlotHandler, auditLogHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, slotCache
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
	// Stop background services first
	if app.SlotCache != nil {
		app.SlotCache.Stop()
	}

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
