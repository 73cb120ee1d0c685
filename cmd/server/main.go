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
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/config"
	petcareEvents "github.com/Kilat-Pet-Delivery/service-petcare/internal/events"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

const serviceName = "service-petcare"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-petcare",
		zap.String("port", cfg.Port),
		zap.String("persistence", cfg.Persistence),
		zap.String("storage", cfg.Storage.Driver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	repos, db := openRepositories(cfg, log)

	// Initialize object store
	var objects storage.ObjectStore
	switch cfg.Storage.Driver {
	case "memory":
		objects = storage.NewMemoryStore()
	case "s3":
		objects, err = storage.NewS3Store(ctx, storage.S3Config{
			Region:       cfg.Storage.Region,
			Endpoint:     cfg.Storage.Endpoint,
			UsePathStyle: cfg.Storage.UsePathStyle,
		}, log)
		if err != nil {
			log.Fatal("failed to create object store", zap.Error(err))
		}
	default:
		log.Fatal("unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer and the photo eviction consumer
	var publisher application.EventPublisher
	if cfg.EventsEnabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer

		groupID := cfg.KafkaConfig.GroupPrefix + "petcare-photo-eviction"
		evictionConsumer := petcareEvents.NewPhotoEvictionConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			objects,
			log,
		)
		defer func() { _ = evictionConsumer.Close() }()

		go func() {
			log.Info("starting photo eviction consumer")
			if err := evictionConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("photo eviction consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize application services
	policy := application.AccessPolicy{EnforceOwnership: cfg.Workflow.EnforceOwnership}
	photoCfg := application.PhotoStoreConfig{BaseURL: cfg.Storage.BaseURL, Bucket: cfg.Storage.Bucket}

	petService := application.NewPetService(repos, policy, log)
	toyService := application.NewToyService(repos.Toys, log)
	associationService := application.NewAssociationService(repos.Pets, repos.ToyLinks, repos.Toys, policy, publisher, log)
	feedingService := application.NewFeedingService(repos.Pets, repos.Feedings, policy, publisher, log)
	photoService := application.NewPhotoService(repos.Pets, repos.Photos, objects, photoCfg, policy, publisher, log)

	// Initialize HTTP handlers
	workflowOpts := handler.WorkflowOptions{SurfaceErrors: cfg.Workflow.SurfaceErrors}
	petHandler := handler.NewPetHandler(petService)
	adminHandler := handler.NewAdminPetHandler(petService)
	toyHandler := handler.NewToyHandler(toyService)
	associationHandler := handler.NewAssociationHandler(associationService, workflowOpts, log)
	feedingHandler := handler.NewFeedingHandler(feedingService, workflowOpts, log)
	photoHandler := handler.NewPhotoHandler(photoService, workflowOpts, log)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	petHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	toyHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	associationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	feedingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	photoHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-petcare...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-petcare stopped")
}

// openRepositories builds the repositories for the configured persistence
// driver. The returned *gorm.DB is nil for the memory driver.
func openRepositories(cfg *config.ServiceConfig, log *zap.Logger) (application.Repositories, *gorm.DB) {
	if cfg.Persistence == "memory" {
		log.Warn("using in-memory persistence; data is lost on restart")
		store := memory.NewStore()
		return application.Repositories{
			Pets:     store.Pets(),
			ToyLinks: store.Pets(),
			Toys:     store.Toys(),
			Feedings: store.Feedings(),
			Photos:   store.Photos(),
		}, nil
	}

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.PetModel{},
			&repository.ToyModel{},
			&repository.PetToyModel{},
			&repository.FeedingModel{},
			&repository.PhotoModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	petRepo := repository.NewGormPetRepository(db)
	return application.Repositories{
		Pets:     petRepo,
		ToyLinks: petRepo,
		Toys:     repository.NewGormToyRepository(db),
		Feedings: repository.NewGormFeedingRepository(db),
		Photos:   repository.NewGormPhotoRepository(db),
	}, db
}
