package courseRoutes

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	validators "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupManageCourseRoutes sets up the owner-scoped course management
// routes. Must be registered before the public catalog routes so the
// static segments win over the catalog's /:slug parameter.
func SetupManageCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Bulk reorder endpoints: authenticated session only, no permission
	// gate and no CSRF token, by design
	courseGroup.Post("/module/order", middleware.JWTMiddleware, controllers.ModuleOrder)

	// Course CRUD
	courseGroup.Get("/mine", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("view-course"), controllers.ManageCourseList)
	courseGroup.Get("/create", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("add-course"), controllers.CourseCreateForm)
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("add-course"), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:id/edit", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("change-course"), validators.CourseID(), controllers.CourseEditForm)
	courseGroup.Post("/:id/edit", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("change-course"), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Get("/:id/delete", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("delete-course"), validators.CourseID(), controllers.CourseDeleteConfirm)
	courseGroup.Post("/:id/delete", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("delete-course"), validators.CourseID(), controllers.DeleteCourse)

	// Module formset editor (ownership folded into existence, no
	// separate permission gate)
	courseGroup.Get("/:id/module", middleware.JWTMiddleware, validators.CourseID(), controllers.ModuleFormsetGet)
	courseGroup.Post("/:id/module", middleware.JWTMiddleware, validators.ModuleFormset(), controllers.ModuleFormsetPost)

	// Content editor
	moduleGroup := app.Group("/module")
	moduleGroup.Get("/:module_id/content/:model_name/create", middleware.JWTMiddleware, validators.ContentPath(), controllers.ContentForm)
	moduleGroup.Post("/:module_id/content/:model_name/create", middleware.JWTMiddleware, validators.ContentSave(), controllers.ContentCreateUpdate)
	moduleGroup.Get("/:module_id/content/:model_name/:id", middleware.JWTMiddleware, validators.ContentPath(), controllers.ContentForm)
	moduleGroup.Post("/:module_id/content/:model_name/:id", middleware.JWTMiddleware, validators.ContentSave(), controllers.ContentCreateUpdate)
	moduleGroup.Get("/:id/content", middleware.JWTMiddleware, validators.ModuleID(), controllers.ModuleContentList)

	// Content deletion and reorder
	contentGroup := app.Group("/content")
	contentGroup.Post("/order", middleware.JWTMiddleware, controllers.ContentOrder)
	contentGroup.Post("/:id/delete", middleware.JWTMiddleware, validators.ContentID(), controllers.DeleteContent)
}
