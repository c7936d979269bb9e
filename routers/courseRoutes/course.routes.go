package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Enrollment (embedded form on the public detail page posts here)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("enroll-course"), validators.CourseID(), controllers.EnrollInCourse)

	// Public catalog, world readable
	courseGroup.Get("/", controllers.CatalogCourseList)
	courseGroup.Get("/:slug", controllers.CatalogCourseDetail)

	app.Get("/subject/:slug", controllers.CatalogCourseList)
}
