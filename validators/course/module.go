package courseValidator

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Module Formset Validator ============

// ModuleFormset validates a full module formset submission. Every row
// must pass before any row persists; the controller rolls the set into
// one transaction.
func ModuleFormset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Modules []controllers.ModuleFormRow `json:"modules"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		rows := make([]controllers.ModuleFormRow, 0, len(reqData.Modules))

		for i, row := range reqData.Modules {
			row.Title = strings.TrimSpace(row.Title)
			row.Description = strings.TrimSpace(row.Description)

			// Blank extra rows are ignored, matching the unfilled slots
			// the GET response includes
			if row.ID == 0 && row.Title == "" && row.Description == "" && !row.Delete {
				continue
			}

			if row.Delete && row.ID == 0 {
				errors[fmt.Sprintf("modules.%d.delete", i)] = "Cannot delete a module that does not exist!"
				continue
			}

			if !row.Delete {
				if row.Title == "" {
					errors[fmt.Sprintf("modules.%d.title", i)] = "Module title is required!"
				} else if len(row.Title) < 3 {
					errors[fmt.Sprintf("modules.%d.title", i)] = "Module title must be at least 3 characters long!"
				}
			}

			rows = append(rows, row)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModuleRows", rows)
		return c.Next()
	}
}
