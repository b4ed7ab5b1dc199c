package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kyc-identity/internal/adapters/http/middleware"
	"kyc-identity/internal/adapters/http/routes"
	"kyc-identity/internal/adapters/persistence/models"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/config"
	"kyc-identity/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "kyc-identity/docs" // Swagger docs
)

// @title KYC Identity Service API
// @version 1.0
// @description Identity, authentication and RBAC service for the KYC/AML platform.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@kyc-identity.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Bootstrap the first admin account if configured
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
	}

	// Start retention sweep for soft-deleted accounts
	retention := services.NewRetentionService(repositories.NewUserRepository(db), cfg.Security.RetentionDays)
	retention.Start()
	defer retention.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "KYC Identity Service v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	if err := routes.Setup(app, db, cfg); err != nil {
		log.Fatalf("❌ Failed to setup routes: %v", err)
	}

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
