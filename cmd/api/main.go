package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"go-careers-backend/config"
	_ "go-careers-backend/docs" // Important for Swagger
	"go-careers-backend/internal/delivery/http/middleware"
	v1 "go-careers-backend/internal/delivery/http/v1"
	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/repository/postgres"
	"go-careers-backend/internal/seed"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/auth"
	"go-careers-backend/pkg/database"
	"go-careers-backend/pkg/email"
	"go-careers-backend/pkg/lock"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/redis"
	"go-careers-backend/pkg/security"
)

// @title           Careers Board API
// @version         1.0
// @description     Job postings, applications and the hiring pipeline.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.AppEnv)
	logger.Log.Info("Starting careers backend", "port", cfg.Port, "env", cfg.AppEnv)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.DBAutoMigrate {
		if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to apply schema", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Database schema applied")
	}

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory rate limits and locks", "error", err)
		redisClient = nil
	default:
		logger.Log.Info("Redis connection established")
		defer redisClient.Close()
	}

	var bulkLocker domain.BulkLocker = lock.NewMemory()
	healthOptional := []domain.Pinger{}
	if redisClient != nil {
		bulkLocker = lock.NewRedis(redisClient)
		healthOptional = append(healthOptional, redis.NewPinger(redisClient))
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	templateRepo := postgres.NewTemplateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	noteRepo := postgres.NewNoteRepository(dbPool)
	ratingRepo := postgres.NewRatingRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	var notifier domain.Notifier = emailService
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - application confirmations will be skipped")
		notifier = nil
	}

	// 7. Setup session tokens, with the external JWKS when configured
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(auth.ProviderConfig{
			URL:      cfg.JWKSURL,
			Issuer:   cfg.JWKSIssuer,
			Audience: cfg.JWKSAudience,
		})
	}
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute, jwksProvider)
	loginTracker := security.NewLoginTracker(redisClient, security.DefaultLoginTrackerConfig())

	// 8. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, tokens, loginTracker)
	jobUC := usecase.NewJobUsecase(jobRepo, templateRepo)
	templateUC := usecase.NewTemplateUsecase(templateRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, noteRepo, ratingRepo, notifier)
	bulkUC := usecase.NewBulkUsecase(applicationRepo, bulkLocker, time.Duration(cfg.BulkLockTTLSeconds)*time.Second)
	healthUC := usecase.NewHealthUsecase([]domain.Pinger{database.NewPinger(dbPool)}, healthOptional...)

	var seedUC domain.SeedUsecase
	if cfg.SeedEnabled {
		seedUC = usecase.NewSeedUsecase(postgres.NewSeedRepository(dbPool), seed.NewSource(cfg.SeedFile))
		logger.Log.Warn("Seeding enabled - POST /v1/seed wipes every table")
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		TemplateUC:    templateUC,
		ApplicationUC: applicationUC,
		BulkUC:        bulkUC,
		HealthUC:      healthUC,
		SeedUC:        seedUC,
		Tokens:        tokens,
		RateLimiter:   middleware.NewRateLimiter(redisClient),
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
