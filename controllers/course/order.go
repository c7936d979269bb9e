package controllers

import (
	"coursehub/database"
	courseModels "coursehub/models/course"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// The reorder endpoints accept a JSON object mapping row ids to new
// order values: {"5": 3, "9": 1}. Rows the caller does not own are
// skipped silently; the response never reports which ids applied.
// They are bearer-token only, with no CSRF protection.

// ModuleOrder bulk-updates module order for the requesting owner
func ModuleOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized!",
		})
	}

	var payload map[string]int
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid JSON body!",
		})
	}

	ownedCourses := database.Database.Db.Model(&courseModels.Course{}).
		Select("id").Where("owner_id = ? AND is_deleted = ?", userID, false)

	for id, order := range payload {
		moduleID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		database.Database.Db.Model(&courseModels.Module{}).
			Where("id = ? AND is_deleted = ? AND course_id IN (?)", moduleID, false, ownedCourses).
			Update("order_index", order)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"saved": "OK"})
}

// ContentOrder bulk-updates content order for the requesting owner
func ContentOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized!",
		})
	}

	var payload map[string]int
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid JSON body!",
		})
	}

	ownedCourses := database.Database.Db.Model(&courseModels.Course{}).
		Select("id").Where("owner_id = ? AND is_deleted = ?", userID, false)
	ownedModules := database.Database.Db.Model(&courseModels.Module{}).
		Select("id").Where("course_id IN (?) AND is_deleted = ?", ownedCourses, false)

	for id, order := range payload {
		contentID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		database.Database.Db.Model(&courseModels.Content{}).
			Where("id = ? AND is_deleted = ? AND module_id IN (?)", contentID, false, ownedModules).
			Update("order_index", order)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"saved": "OK"})
}
