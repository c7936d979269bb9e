package main

import (
	"coursehub/config"
	"coursehub/database"
	authRoutes "coursehub/routers/authRoutes"
	courseRoutes "coursehub/routers/courseRoutes"
	"coursehub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
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

	authRoutes.SetupAuthRoutes(app)
	// Management routes must come before the catalog so static segments
	// like /course/mine are matched ahead of /course/:slug
	courseRoutes.SetupManageCourseRoutes(app)
	courseRoutes.SetupCourseRoutes(app)

	// Nightly purge of rows soft-deleted past the retention window
	utils.StartPurgeScheduler(database.Database.Db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
