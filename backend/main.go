package main

import (
	"log"
	"nanum-admin/backend/handlers"
	"nanum-admin/backend/models"
	"nanum-admin/backend/services"
	"nanum-admin/backend/system"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	// 0. Configuration and Logger
	cfg, err := system.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := system.InitLogger(cfg.LogDir, cfg.Env); err != nil {
		log.Printf("Warning: Could not initialize file logger: %v", err)
	}
	defer system.Close()

	system.Info("nanum-admin backend starting (env: %s)", cfg.Env)
	if cfg.UsesDefaultSecret() {
		system.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}

	// 1. Setup Database
	db, err := system.OpenDatabase(cfg.DB)
	if err != nil {
		system.Error("Failed to connect to database: %v", err)
		log.Fatal("Failed to connect to database:", err)
	}

	// CRITICAL: Ensure schema is up to date. Exit if migration fails.
	if err := models.Migrate(db); err != nil {
		system.Error("Database migration failed: %v", err)
		log.Fatalf("CRITICAL: Database migration failed. Application cannot start: %v", err)
	}
	system.Info("Database migration completed successfully")

	if err := handlers.SeedOrganization(db, cfg.Seed); err != nil {
		system.Warn("Failed to seed organization: %v", err)
	}

	// 2. Setup Services and Handlers
	metrics, err := handlers.NewMetrics()
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}
	h := handlers.NewHandler(
		db,
		services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry),
		services.NewPasswordVerifier(cfg.LegacyKey, cfg.LegacySalt),
		metrics,
	)
	h.Webhook = services.NewWebhookService(cfg.WebhookURL)
	if h.Webhook.IsEnabled() {
		system.Info("Webhook alerts enabled")
	}

	app := NewApp(h, cfg.FrontendDir)

	// Start
	system.Info("Server starting on %s", cfg.ListenAddr)
	handlers.AddEvent("success", "nanum-admin backend started")

	// Graceful Shutdown Handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c // Wait for signal
		system.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
	closeDatabase(db)
}

// NewApp wires middleware and routes onto a fresh Fiber app
func NewApp(h *handlers.Handler, frontendPath string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "nanum-admin",
	})

	app.Use(recover.New())

	// Add request logging middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}))

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupRoutes(app, h)

	// Serve Static Files (Frontend)
	if frontendPath != "" {
		app.Static("/", frontendPath, fiber.Static{
			ByteRange: true,
			Browse:    false,
			MaxAge:    3600,
		})

		// SPA Fallback: Serve index.html for all other routes
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(frontendPath, "index.html"))
		})
	}

	return app
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		system.Warn("Failed to close database: %v", err)
	}
}
