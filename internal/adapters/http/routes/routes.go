package routes

import (
	"fmt"
	"time"

	"kyc-identity/internal/adapters/http/handlers"
	"kyc-identity/internal/adapters/http/middleware"
	"kyc-identity/internal/adapters/persistence/repositories"
	"kyc-identity/internal/config"
	"kyc-identity/internal/core/services"
	"kyc-identity/internal/pkg/password"
	"kyc-identity/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) error {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)

	// Initialize token codec and password hasher
	codec, err := token.NewCodec(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		time.Duration(cfg.JWT.AccessTokenMins)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenDays)*24*time.Hour,
	)
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}
	hasher := password.NewHasher(cfg.Security.BcryptCost)

	// Initialize services
	authService := services.NewAuthService(userRepo, codec, hasher)
	userService := services.NewUserService(userRepo)
	gdprService := services.NewGDPRService(userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, authService)
	gdprHandler := handlers.NewGDPRHandler(gdprService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate-limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authService, cfg)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.Authenticate(authService))
	setupProfileRoutes(profileRoutes, userHandler)

	// User management routes (authenticated; per-route role checks)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.Authenticate(authService))
	setupUserRoutes(userRoutes, userHandler)

	// GDPR routes (authenticated)
	gdprRoutes := apiV1.Group("/gdpr")
	gdprRoutes.Use(middleware.Authenticate(authService))
	setupGDPRRoutes(gdprRoutes, gdprHandler)

	return nil
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authService *services.AuthService, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(cfg), middleware.NoCache(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(cfg), middleware.NoCache(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(cfg), middleware.NoCache(), handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.Authenticate(authService), handler.Me)
	router.Post("/change-password", middleware.Authenticate(authService), middleware.NoCache(), handler.ChangePassword)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Admin only
	router.Get("/", middleware.AdminOnly(), handler.ListUsers)
	router.Put("/:id", middleware.AdminOnly(), handler.UpdateUser)
	router.Post("/:id/activate", middleware.AdminOnly(), handler.ActivateUser)
	router.Post("/:id/deactivate", middleware.AdminOnly(), handler.DeactivateUser)
	router.Post("/:id/verify", middleware.AdminOnly(), handler.VerifyUser)

	// Self or admin (enforced in handler)
	router.Get("/:id", handler.GetUser)
}

// setupGDPRRoutes configures data export and erasure routes
func setupGDPRRoutes(router fiber.Router, handler *handlers.GDPRHandler) {
	router.Get("/export/me", handler.ExportMyData)
	router.Get("/export/:id", handler.ExportUserData)
	router.Delete("/delete/me", handler.EraseMyData)
	router.Delete("/delete/:id", handler.EraseUserData)
}
