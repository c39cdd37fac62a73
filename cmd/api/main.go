package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/qoloner/qoloner-api/internal/cache"
	"github.com/qoloner/qoloner-api/internal/config"
	"github.com/qoloner/qoloner-api/internal/database"
	"github.com/qoloner/qoloner-api/internal/handler"
	"github.com/qoloner/qoloner-api/internal/middleware"
	"github.com/qoloner/qoloner-api/internal/repository"
	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/worker"
)

// main is the application entrypoint for the Qoloner marketplace API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting qoloner api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis (optional). Without it the catalog falls back to
	// SQL filtering instead of the cached snapshot.
	var catalogCache *cache.CatalogCache
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		catalogCache = cache.NewCatalogCache(redisClient, cfg.Catalog.SnapshotTTL)
		log.Info().Msg("redis connected successfully")
	} else {
		log.Info().Msg("redis not configured - catalog snapshot cache disabled")
	}

	// 4. Initialize blob storage
	storageSvc, err := service.NewStorageService(context.Background(), &cfg.S3)
	if err != nil {
		log.Error().Err(err).Msg("storage initialization failed")
		fmt.Fprintf(os.Stderr, "storage initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	masterRepo := repository.NewMasterRepository(db)
	productRepo := repository.NewProductRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	// 6. Initialize services
	tokenSvc := service.NewTokenService(cfg.Token.Secret, cfg.Token.TTL)
	masterSvc := service.NewMasterService(masterRepo, tokenSvc)
	paymentSvc := service.NewPaymentService()

	catalogSvc := service.NewCatalogService(productRepo, nil)
	listingSvc := service.NewListingService(productRepo, uploadRepo, storageSvc, nil)
	if catalogCache != nil {
		catalogSvc = service.NewCatalogService(productRepo, catalogCache)
		listingSvc = service.NewListingService(productRepo, uploadRepo, storageSvc, catalogCache)
	}

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db),
		Catalog:   handler.NewCatalogHandler(catalogSvc, paymentSvc),
		Master:    handler.NewMasterHandler(masterSvc),
		Listing:   handler.NewListingHandler(listingSvc),
		Reference: handler.NewReferenceHandler(),
	}

	// 8. Initialize middleware
	submissionMw := middleware.NewSubmissionAuthMiddleware(tokenSvc)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, submissionMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewCleanupWorker(uploadRepo, storageSvc, cfg.Worker.CleanupInterval, cfg.Worker.UploadOrphanAge).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Catalog   *handler.CatalogHandler
	Master    *handler.MasterHandler
	Listing   *handler.ListingHandler
	Reference *handler.ReferenceHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, submissionMw *middleware.SubmissionAuthMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Catalog routes (public)
	catalog := router.Group("/v1/catalog")
	{
		catalog.GET("/products", handlers.Catalog.GetProducts)
		catalog.GET("/products/:id", handlers.Catalog.GetProduct)
		catalog.GET("/products/:id/payment", handlers.Catalog.GetPaymentInstruction)
		catalog.GET("/categories", handlers.Reference.GetCategories)
		catalog.GET("/cities", handlers.Reference.GetCities)
	}

	// Master registration (public)
	router.POST("/v1/masters/register", handlers.Master.Register)

	// Listing submission (protected with the submission token)
	router.POST("/v1/listings", submissionMw.Handle(), handlers.Listing.Create)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
