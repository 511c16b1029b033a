package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/config"
	"github.com/mealshare/backend/internal/handlers"
	"github.com/mealshare/backend/internal/middleware"
	"github.com/mealshare/backend/internal/repository"
	"github.com/mealshare/backend/internal/service"
	"github.com/mealshare/backend/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting mealshare api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"db_driver", cfg.Database.Driver,
	)

	store, err := openStore(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize services
	restaurantService := service.NewRestaurantService(store, store, store, log)
	foodItemService := service.NewFoodItemService(store, store, log)
	pickupService := service.NewPickupService(store, store, log)
	impactService := service.NewImpactService(store, cfg.Impact.MonthlyWindow, log)
	profileService := service.NewProfileService(store)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, version, log)
	api := &handlers.API{
		Restaurants: handlers.NewRestaurantHandler(restaurantService, log),
		FoodItems:   handlers.NewFoodItemHandler(foodItemService, log),
		Pickups:     handlers.NewPickupHandler(pickupService, log),
		Impact:      handlers.NewImpactHandler(impactService, log),
		Profiles:    handlers.NewProfileHandler(profileService, log),
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	api.Mount(r, middleware.BearerAuth(verifier))

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server stopped gracefully")
}

// openStore returns the store selected by DB_DRIVER
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	db, err := repository.Open(cfg.Database, log, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	store := repository.NewGormStore(db)

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations")
		if err := store.AutoMigrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return store, nil
}
