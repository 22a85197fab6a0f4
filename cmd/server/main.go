package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/config"
	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/handlers"
	"github.com/bureaunet/directory-backend/internal/middleware"
	"github.com/bureaunet/directory-backend/internal/services"
	"github.com/bureaunet/directory-backend/internal/utils"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting bureau directory backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize upload storage
	store, err := newStore(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize upload storage: %v", err)
	}
	logger.WithField("driver", cfg.Storage.Driver).Info("Upload storage ready")

	// Initialize repositories
	adminRepository := database.NewAdminRepository(db)
	distributorRepository := database.NewDistributorRepository(db)
	bureauRepository := database.NewBureauRepository(db)
	sliderRepository := database.NewSliderImageRepository(db)
	galleryRepository := database.NewGalleryImageRepository(db)

	// Initialize services
	var auditor services.Auditor
	if cfg.Security.EnableAuditLog {
		auditor = services.NewAuditService(db, logger)
	}
	hasher := services.NewPasswordHasher(services.DefaultBcryptCost)

	authService := services.NewAuthService(adminRepository, distributorRepository, bureauRepository, hasher, auditor, logger)
	registrationService := services.NewRegistrationService(
		distributorRepository,
		bureauRepository,
		hasher,
		services.NewBureauIDGenerator(),
		auditor,
		logger,
	)
	profileService := services.NewProfileService(adminRepository, distributorRepository, bureauRepository, logger)
	imageService := services.NewImageService(bureauRepository, sliderRepository, galleryRepository, logger)

	// Initialize and start cron service
	cronService := services.NewCronService(db, logger, cfg.Jobs.HealthCheckSchedule)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	uploader := handlers.NewUploader(store, logger)
	router := newRouter(cfg, logger, db, routeHandlers{
		auth:         handlers.NewAuthHandler(authService, logger),
		profile:      handlers.NewProfileHandler(profileService, logger),
		registration: handlers.NewRegistrationHandler(registrationService, uploader, logger),
		image:        handlers.NewImageHandler(imageService, uploader, logger),
		files:        handlers.NewFileHandler(store, logger),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// newStore opens the upload store selected by STORAGE_DRIVER
func newStore(cfg config.StorageConfig) (storage.Store, error) {
	if cfg.Driver == "minio" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	}

	return storage.NewLocalStore(cfg.Root)
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      c.Request.URL.RawQuery,
			"ip":         utils.ClientIP(c),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": middleware.GetRequestID(c),
			"device":     utils.ParseUserAgent(utils.UserAgent(c)),
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		if status >= 500 {
			entry.Error("Request completed with server error")
		} else if status >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"status":           "healthy",
			"database":         "healthy",
			"open_connections": stats.OpenConnections,
			"version":          version,
			"timestamp":        time.Now().Unix(),
		})
	}
}
