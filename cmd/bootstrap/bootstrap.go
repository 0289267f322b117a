package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-consult-api/config"
	deliveryHttp "go-consult-api/internal/delivery/http"
	"go-consult-api/internal/delivery/http/handler"
	"go-consult-api/internal/delivery/http/middleware"
	"go-consult-api/internal/infrastructure/cache"
	"go-consult-api/internal/infrastructure/database"
	"go-consult-api/internal/repository"
	"go-consult-api/internal/storage"
	"go-consult-api/internal/usecase"
	"go-consult-api/pkg/jwt"
	"go-consult-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	MongoClient *mongo.Client
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration. A missing document-store URI fails here, before
	// any traffic is served.
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize MongoDB
	mongoClient, db, err := database.NewMongoConnection(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.MongoClient = mongoClient

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
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
func initializeServer(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)
	tokenStore := repository.NewRedisTokenStore(redisClient)

	// Initialize storage
	configStore := storage.NewFileStore(cfg.Storage.ConfigFile, log)
	var uploader storage.Uploader
	if cfg.Storage.Backend == storage.BackendS3 {
		s3Uploader, err := storage.NewS3Uploader(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 uploader: %w", err)
		}
		uploader = s3Uploader
	} else {
		uploader = storage.NewLocalUploader()
	}
	resolver := storage.NewResolver(configStore, cfg.Storage.Backend, uploader, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, tokenStore, jwtService, cfg.Admin)
	mediaUsecase := usecase.NewMediaUsecase(log, configStore, resolver)
	consultationUsecase := usecase.NewConsultationUsecase(log, consultationRepo)

	// Ensure the default admin account exists. Failures are logged inside
	// and never abort startup.
	authUsecase.CreateDefaultAdmin(context.Background())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	mediaHandler := handler.NewMediaHandler(mediaUsecase, cfg.App.Env)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, mediaHandler, consultationHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
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
	app.Close(ctx)

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close(ctx context.Context) {
	if app.MongoClient != nil {
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			logrus.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
