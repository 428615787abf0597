package userRoutes

import (
	courseControllers "edvid/controllers/course"
	userController "edvid/controllers/userControllers"
	"edvid/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up dashboard and credential listing routes
func SetupUserRoutes(app *fiber.App) {
	dashGroup := app.Group("/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, userController.GetDashboardStats)

	userGroup := app.Group("/user")
	userGroup.Get("/credentials", middleware.JWTMiddleware, courseControllers.GetUserCredentials)
}
