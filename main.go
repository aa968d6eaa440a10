// Package main provides the main entry point for the Affilink affiliate link service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/prasit9/affilink/app/handlers"
	"github.com/prasit9/affilink/app/middleware"
	"github.com/prasit9/affilink/app/router"
	"github.com/prasit9/affilink/app/scheduler"
	"github.com/prasit9/affilink/app/services"
	businessflow "github.com/prasit9/affilink/business_flow"
	"github.com/prasit9/affilink/cache"
	"github.com/prasit9/affilink/config"
	"github.com/prasit9/affilink/repository"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Affilink application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeStore builds the fast store used for counters and cached aggregates.
// Redis is the production provider; the in-process store backs single-node and
// development deployments.
func initializeStore(cfg config.CacheConfig) (cache.Store, *redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		log.Println("Using in-process memory store")
		return cache.NewMemoryStore(), nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return cache.NewRedisStore(rc, cfg.RedisPrefix), rc, nil
}

// startStoreHealthMonitor starts a background goroutine that periodically pings
// Redis to detect connectivity issues. The returned cancel function stops it.
func startStoreHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	store, rc, err := initializeStore(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startStoreHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Marketplace price clients
	marketplaceRegistry := services.NewMarketplaceRegistry(&cfg.Marketplace)

	// Initialize flows
	clickFlow := businessflow.NewClickFlow(clickRepo, store)
	redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickFlow)
	analyticsFlow := businessflow.NewAnalyticsFlow(clickRepo, campaignRepo, store)
	linkFlow := businessflow.NewLinkFlow(linkRepo, campaignRepo, productRepo, offerRepo, cfg.Links.BaseURL)
	jobStatusFlow := businessflow.NewJobStatusFlow(store)
	authFlow := businessflow.NewAuthFlow(cfg.Admin, tokenService)
	reportFlow := businessflow.NewReportFlow(campaignRepo, linkRepo, clickRepo)

	// Initialize handlers
	redirectHandler := handlers.NewRedirectHandler(redirectFlow)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsFlow)
	linkHandler := handlers.NewLinkHandler(linkFlow)
	authHandler := handlers.NewAuthHandler(authFlow)
	jobHandler := handlers.NewJobHandler(jobStatusFlow)
	reportHandler := handlers.NewReportHandler(reportFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		redirectHandler,
		analyticsHandler,
		linkHandler,
		authHandler,
		jobHandler,
		reportHandler,
		authMiddleware,
	)

	if cfg.Refresh.Enabled {
		refresher := scheduler.NewPriceRefresher(offerRepo, marketplaceRegistry, jobStatusFlow, log.Default(), cfg.Refresh.Interval)
		stopRefresher := refresher.Start(context.Background())
		stopFuncs = append(stopFuncs, stopRefresher)
	}

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
