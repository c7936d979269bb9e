package authRoutes

import (
	authController "coursehub/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup and login routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authController.Signup)
	authGroup.Post("/login", authController.Login)
}
