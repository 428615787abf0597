package authRoutes

import (
	controllers "edvid/controllers/auth"
	"edvid/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up Google sign-in and session routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Get("/google/login", controllers.GoogleLogin)
	authGroup.Get("/google/callback", controllers.GoogleCallback)

	// Idempotent user upsert for an already-issued token
	authGroup.Post("/session", middleware.JWTMiddleware, controllers.UpsertSession)
}
