package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	courseModels "coursehub/models/course"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// extraBlankRows is the number of empty rows appended to the module
// formset on GET so new modules can be added in the same submission
const extraBlankRows = 2

// ModuleFormRow is one editable row of the module formset. A zero ID
// means a new module; Delete marks an existing one for removal.
type ModuleFormRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Delete      bool   `json:"delete"`
}

func rowErrorKey(i int, field string) string {
	return fmt.Sprintf("modules.%d.%s", i, field)
}

// ModuleFormsetGet renders the module formset for a course: one row per
// existing module plus a few blank rows
func ModuleFormsetGet(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	rows := make([]ModuleFormRow, 0, len(modules)+extraBlankRows)
	for _, mod := range modules {
		rows = append(rows, ModuleFormRow{
			ID:          mod.ID,
			Title:       mod.Title,
			Description: mod.Description,
		})
	}
	for i := 0; i < extraBlankRows; i++ {
		rows = append(rows, ModuleFormRow{})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module formset fetched successfully!", fiber.Map{
		"course":  course,
		"modules": rows,
	})
}

// ModuleFormsetPost applies a full set of module rows for one course in
// a single transaction. Either every row is valid and all additions,
// edits and deletions persist, or nothing does.
func ModuleFormsetPost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	rows, ok := c.Locals("validatedModuleRows").([]ModuleFormRow)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Rows referencing module ids must reference modules of this course.
	// A foreign id fails the whole set, nothing persists.
	errors := make(map[string]string)
	existing := make(map[uint]*courseModels.Module)
	for i, row := range rows {
		if row.ID == 0 {
			continue
		}
		var mod courseModels.Module
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", row.ID, course.ID, false).First(&mod).Error; err != nil {
			errors[rowErrorKey(i, "id")] = "Module does not belong to this course!"
			continue
		}
		m := mod
		existing[row.ID] = &m
	}

	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	// Next order index for added modules, 0-based within the course
	var maxOrder int
	database.Database.Db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)
	nextOrder := maxOrder + 1

	tx := database.Database.Db.Begin()

	for _, row := range rows {
		switch {
		case row.Delete && row.ID > 0:
			mod := existing[row.ID]
			mod.IsDeleted = true
			if err := tx.Save(mod).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
			if err := tx.Model(&courseModels.Content{}).Where("module_id = ?", mod.ID).Update("is_deleted", true).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
		case row.ID > 0:
			mod := existing[row.ID]
			mod.Title = row.Title
			mod.Description = row.Description
			if err := tx.Save(mod).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
		default:
			mod := courseModels.Module{
				CourseID:    course.ID,
				Title:       row.Title,
				Description: row.Description,
				OrderIndex:  nextOrder,
			}
			nextOrder++
			if err := tx.Create(&mod).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
		}
	}

	tx.Commit()

	return c.Redirect("/course/mine", fiber.StatusFound)
}
