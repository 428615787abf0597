package main

import (
	"edvid/config"
	"edvid/database"
	authRoutes "edvid/routers/authRoutes"
	courseRoutes "edvid/routers/courseRoutes"
	spaceRoutes "edvid/routers/spaceRoutes"
	userRoutes "edvid/routers/userRoutes"
	"edvid/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	spaceRoutes.SetupSpaceRoutes(app)
	userRoutes.SetupUserRoutes(app)

	// Background polling for pending video generation jobs
	utils.StartVideoScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
