package courseValidator

import (
	controllers "coursehub/controllers/course"
	"coursehub/middleware"
	courseModels "coursehub/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Content Validators ============

// parseContentPath resolves the module id, item type and optional item
// id from the path. The item type must match the allow-list before
// anything touches the database.
func parseContentPath(c *fiber.Ctx) (int, string, int, error) {
	moduleIDStr := strings.TrimSpace(c.Params("module_id"))
	moduleID, err := strconv.Atoi(moduleIDStr)
	if err != nil || moduleID <= 0 {
		return 0, "", 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}

	itemType := strings.ToLower(strings.TrimSpace(c.Params("model_name")))
	if !courseModels.ValidItemType(itemType) {
		return 0, "", 0, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown content type!", nil)
	}

	itemID := 0
	if idStr := strings.TrimSpace(c.Params("id")); idStr != "" {
		itemID, err = strconv.Atoi(idStr)
		if err != nil || itemID <= 0 {
			return 0, "", 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}
	}

	return moduleID, itemType, itemID, nil
}

// ContentPath validates the content editor path for GET requests
func ContentPath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, itemType, itemID, err := parseContentPath(c)
		if err != nil {
			return err
		}

		c.Locals("moduleID", moduleID)
		c.Locals("itemType", itemType)
		c.Locals("itemID", itemID)
		return c.Next()
	}
}

// ContentSave validates the content editor path and body for POST
// requests. The payload field depends on the item type: text items
// carry content, the rest carry a URL.
func ContentSave() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, itemType, itemID, err := parseContentPath(c)
		if err != nil {
			return err
		}

		reqData := new(struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			URL     string `json:"url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Content = strings.TrimSpace(reqData.Content)
		reqData.URL = strings.TrimSpace(reqData.URL)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		payload := ""
		if itemType == courseModels.ItemTypeText {
			if reqData.Content == "" {
				errors["content"] = "Content is required!"
			}
			payload = reqData.Content
		} else {
			if reqData.URL == "" {
				errors["url"] = "URL is required!"
			} else if !strings.HasPrefix(reqData.URL, "http://") && !strings.HasPrefix(reqData.URL, "https://") {
				errors["url"] = "URL must start with http:// or https://!"
			}
			payload = reqData.URL
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("itemType", itemType)
		c.Locals("itemID", itemID)
		c.Locals("validatedContentItem", &controllers.ContentItemForm{
			Title:   reqData.Title,
			Payload: payload,
		})
		return c.Next()
	}
}

// ModuleID validates a numeric module id path parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleIDStr := strings.TrimSpace(c.Params("id"))
		if moduleIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
		}

		moduleID, err := strconv.Atoi(moduleIDStr)
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// ContentID validates a numeric content id path parameter
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}
