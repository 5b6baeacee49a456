package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-encounter/config"
	deliveryHttp "go-hospital-encounter/internal/delivery/http"
	"go-hospital-encounter/internal/delivery/http/handler"
	"go-hospital-encounter/internal/delivery/http/middleware"
	"go-hospital-encounter/internal/infrastructure/cache"
	"go-hospital-encounter/internal/infrastructure/database"
	"go-hospital-encounter/internal/repository"
	"go-hospital-encounter/internal/service"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/jwt"
	"go-hospital-encounter/pkg/validator"

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
	Guard       *service.SubmissionGuard
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := SetupLogger(cfg.Log)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Timezone, log.GetLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	app.initializeServer(log)

	return app, nil
}

// SetupLogger configures the standard logrus logger from config and returns it.
// An unknown level falls back to info.
func SetupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(log *logrus.Logger) {
	cfg := app.Config
	db := app.DB

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	medicineRepo := repository.NewMedicineRepository()
	scheduleRepo := repository.NewWorkScheduleRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	recordService := service.NewAppointmentRecordService(db, log, appointmentRepo, recordRepo, prescriptionRepo, medicineRepo)
	catalogService := service.NewMedicineCatalogService(db, app.RedisClient, log, medicineRepo, cfg.Cache.MedicineSearchTTL)
	scheduleService := service.NewScheduleService(db, log, scheduleRepo)
	auditService := service.NewAuditService(db, log, auditLogRepo)
	app.Guard = service.NewSubmissionGuard(log)

	// Initialize usecases
	encounterUsecase := usecase.NewEncounterUsecase(log, recordService, catalogService, app.Guard, auditService)
	scheduleUsecase := usecase.NewWorkScheduleUsecase(log, scheduleService, usecase.NewWorkScheduleValidator(customValidator), auditService, cfg.App.Location())
	medicineUsecase := usecase.NewMedicineUsecase(log, catalogService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	encounterHandler := handler.NewEncounterHandler(encounterUsecase, customValidator)
	medicineHandler := handler.NewMedicineHandler(medicineUsecase, customValidator)
	workScheduleHandler := handler.NewWorkScheduleHandler(scheduleUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, middleware.NewRedisTokenStore(app.RedisClient))
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		encounterHandler,
		medicineHandler,
		workScheduleHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
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

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.Guard != nil {
		app.Guard.Stop()
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
