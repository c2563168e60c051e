package routes

import (
	"pylearn/backend/config"
	"pylearn/backend/controllers"
	"pylearn/backend/middleware"
	"pylearn/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authService := services.NewAuthService(db)
	progressService := services.NewProgressService(db)
	leaderboardService := services.NewLeaderboardService(db)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Health
	app.Get("/", healthHandler)
	app.Get("/health", healthHandler)

	// Auth routes
	authController := controllers.NewAuthController(authService, cfg)
	app.Post("/auth/register", authController.Register)
	app.Post("/auth/login", authController.Login)
	app.Get("/auth/me", authMiddleware, authController.Me)

	// OAuth routes
	oauthController := controllers.NewOAuthController(authService, cfg)
	app.Get("/auth/:provider<regex(google|github)>", oauthController.Redirect)
	app.Get("/auth/:provider<regex(google|github)>/url", oauthController.AuthURL)
	app.Get("/auth/:provider<regex(google|github)>/callback", oauthController.Callback)

	// Progress routes
	progressController := controllers.NewProgressController(progressService, cfg)
	progress := app.Group("/progress", authMiddleware)
	progress.Get("/", progressController.List)
	progress.Post("/", progressController.Save)
	progress.Get("/exercise/:id", progressController.GetExercise)

	// Leaderboard
	leaderboardController := controllers.NewLeaderboardController(leaderboardService)
	app.Get("/leaderboard", leaderboardController.Get)
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"app":     "PyLearn API",
		"version": "1.0.0",
	})
}
