package spaceRoutes

import (
	controllers "edvid/controllers/space"
	"edvid/middleware"
	validators "edvid/validators/space"

	"github.com/gofiber/fiber/v2"
)

// SetupSpaceRoutes sets up space and video routes
func SetupSpaceRoutes(app *fiber.App) {
	spaceGroup := app.Group("/spaces")

	spaceGroup.Get("/", middleware.JWTMiddleware, controllers.GetSpaces)
	spaceGroup.Post("/", middleware.JWTMiddleware, validators.CreateSpace(), controllers.CreateSpace)

	// Videos
	spaceGroup.Get("/:spaceId/videos", middleware.JWTMiddleware, validators.SpaceID(), controllers.GetSpaceVideos)
	spaceGroup.Post("/:spaceId/videos", middleware.JWTMiddleware, validators.CreateVideo(), controllers.CreateVideo)
	spaceGroup.Post("/:spaceId/videos/generate", middleware.JWTMiddleware, validators.GenerateVideo(), controllers.GenerateVideo)
	spaceGroup.Get("/:spaceId/videos/:videoId", middleware.JWTMiddleware, validators.VideoID(), controllers.GetVideo)
}
