package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/config"
	"github.com/fairyhunter13/loyalty-cart-system/internal/handler"
	"github.com/fairyhunter13/loyalty-cart-system/internal/repository"
	"github.com/fairyhunter13/loyalty-cart-system/internal/service"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
	"github.com/fairyhunter13/loyalty-cart-system/internal/validator"
)

func main() {
	// Load configuration first; an invalid coupon policy is fatal here,
	// never a runtime error.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Seed the catalog and the in-memory store
	catalog, err := store.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	st := store.New(catalog)
	log.Info().Int("products", len(catalog)).Msg("catalog seeded")

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Loyalty Cart System",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB body limit
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Initialize components (layered architecture)
	catalogRepo := repository.NewCatalogRepository(st)
	cartRepo := repository.NewCartRepository(st)
	couponRepo := repository.NewCouponRepository(st)
	orderRepo := repository.NewOrderRepository(st)

	cartService := service.NewCartService(st, catalogRepo, cartRepo)
	couponService := service.NewCouponService(st, couponRepo, orderRepo, cfg.Coupon.Interval)
	checkoutService := service.NewCheckoutService(st, catalogRepo, cartRepo, couponRepo, orderRepo, couponService, cfg.Coupon.DiscountRate)
	statsService := service.NewStatsService(orderRepo)

	cartHandler := handler.NewCartHandler(cartService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)
	adminHandler := handler.NewAdminHandler(couponService, statsService)

	// Health handler
	healthHandler := handler.NewHealthHandler()
	app.Get("/health", healthHandler.Check)

	// API routes
	app.Get("/api/products", cartHandler.ListProducts)
	app.Post("/api/cart/items", cartHandler.AddItem)
	app.Get("/api/cart/:userID", cartHandler.ViewCart)
	app.Post("/api/checkout", checkoutHandler.Checkout)
	app.Post("/api/admin/coupons", adminHandler.IssueCoupon)
	app.Get("/api/admin/stats", adminHandler.Stats)

	// Start server with graceful shutdown
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Int64("coupon_interval", cfg.Coupon.Interval).
			Float64("discount_rate", cfg.Coupon.DiscountRate).
			Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests). All state is
	// process-local and is discarded with the process.
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
