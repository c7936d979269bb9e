package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	courseModels "coursehub/models/course"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContentItemForm is the validated body of a content editor submission.
// Payload carries the type-specific field: text content for text items,
// a URL for video, image and file items.
type ContentItemForm struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// getOwnedModule resolves a module by id restricted to modules whose
// course belongs to the requesting owner
func getOwnedModule(db *gorm.DB, moduleID int, ownerID uint) (*courseModels.Module, error) {
	var module courseModels.Module
	err := db.Joins("JOIN courses ON courses.id = modules.course_id").
		Where("modules.id = ? AND modules.is_deleted = ? AND courses.owner_id = ? AND courses.is_deleted = ?",
			moduleID, false, ownerID, false).
		First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// getOwnedItem resolves a typed item by id and owner. The item type has
// already been checked against the allow-list by the validator.
func getOwnedItem(db *gorm.DB, itemType string, itemID int, ownerID uint) (courseModels.Item, error) {
	cond := "id = ? AND owner_id = ? AND is_deleted = ?"
	switch itemType {
	case courseModels.ItemTypeText:
		var item courseModels.Text
		if err := db.Where(cond, itemID, ownerID, false).First(&item).Error; err != nil {
			return nil, err
		}
		return item, nil
	case courseModels.ItemTypeVideo:
		var item courseModels.Video
		if err := db.Where(cond, itemID, ownerID, false).First(&item).Error; err != nil {
			return nil, err
		}
		return item, nil
	case courseModels.ItemTypeImage:
		var item courseModels.Image
		if err := db.Where(cond, itemID, ownerID, false).First(&item).Error; err != nil {
			return nil, err
		}
		return item, nil
	case courseModels.ItemTypeFile:
		var item courseModels.File
		if err := db.Where(cond, itemID, ownerID, false).First(&item).Error; err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// saveItem creates or updates the typed item, stamping the acting user
// as owner. Returns the stored item.
func saveItem(db *gorm.DB, itemType string, itemID int, ownerID uint, form *ContentItemForm) (courseModels.Item, error) {
	switch itemType {
	case courseModels.ItemTypeText:
		var item courseModels.Text
		if itemID > 0 {
			if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
				return nil, err
			}
		}
		item.OwnerID = ownerID
		item.Title = form.Title
		item.Content = form.Payload
		err := db.Save(&item).Error
		return item, err
	case courseModels.ItemTypeVideo:
		var item courseModels.Video
		if itemID > 0 {
			if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
				return nil, err
			}
		}
		item.OwnerID = ownerID
		item.Title = form.Title
		item.URL = form.Payload
		err := db.Save(&item).Error
		return item, err
	case courseModels.ItemTypeImage:
		var item courseModels.Image
		if itemID > 0 {
			if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
				return nil, err
			}
		}
		item.OwnerID = ownerID
		item.Title = form.Title
		item.URL = form.Payload
		err := db.Save(&item).Error
		return item, err
	case courseModels.ItemTypeFile:
		var item courseModels.File
		if itemID > 0 {
			if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
				return nil, err
			}
		}
		item.OwnerID = ownerID
		item.Title = form.Title
		item.URL = form.Payload
		err := db.Save(&item).Error
		return item, err
	}
	return nil, gorm.ErrRecordNotFound
}

// ContentForm renders the content editor form for creating or editing
// an item of the resolved type
func ContentForm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	itemType := c.Locals("itemType").(string)
	itemID := c.Locals("itemID").(int) // 0 when creating

	module, err := getOwnedModule(database.Database.Db, moduleID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	data := fiber.Map{
		"module":    module,
		"item_type": itemType,
		"fields":    []string{"title", "payload"},
	}

	if itemID > 0 {
		item, err := getOwnedItem(database.Database.Db, itemType, itemID, userID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
		}
		data["item"] = item
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content form fetched successfully!", data)
}

// ContentCreateUpdate persists a content item. Creating a new item also
// creates the content link row and redirects to the module content
// list; editing an existing item re-renders the form instead.
func ContentCreateUpdate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	itemType := c.Locals("itemType").(string)
	itemID := c.Locals("itemID").(int) // 0 when creating

	module, err := getOwnedModule(database.Database.Db, moduleID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if itemID > 0 {
		if _, err := getOwnedItem(database.Database.Db, itemType, itemID, userID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
		}
	}

	form, ok := c.Locals("validatedContentItem").(*ContentItemForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item, err := saveItem(database.Database.Db, itemType, itemID, userID, form)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content item!", nil)
	}

	if itemID == 0 {
		// New item: link it into the module and send the editor to the
		// module content list
		var maxOrder int
		database.Database.Db.Model(&courseModels.Content{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)

		content := courseModels.Content{
			ModuleID:   module.ID,
			ItemType:   itemType,
			ItemID:     item.ItemID(),
			OrderIndex: maxOrder + 1,
		}
		if err := database.Database.Db.Create(&content).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to link content!", nil)
		}

		return c.Redirect(fmt.Sprintf("/module/%d/content", module.ID), fiber.StatusFound)
	}

	// Existing item: re-render the form with the saved values, no redirect
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content item updated successfully!", fiber.Map{
		"module":    module,
		"item_type": itemType,
		"item":      item,
	})
}

// ContentRow is one entry of a module content list
type ContentRow struct {
	ContentID  uint              `json:"content_id"`
	ItemType   string            `json:"item_type"`
	OrderIndex int               `json:"order_index"`
	Summary    string            `json:"summary"`
	Item       courseModels.Item `json:"item"`
}

// ModuleContentList lists the content of one module in display order
func ModuleContentList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	module, err := getOwnedModule(database.Database.Db, moduleID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var contents []courseModels.Content
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	rows := make([]ContentRow, 0, len(contents))
	for _, content := range contents {
		item, err := getOwnedItem(database.Database.Db, content.ItemType, int(content.ItemID), userID)
		if err != nil {
			continue
		}
		rows = append(rows, ContentRow{
			ContentID:  content.ID,
			ItemType:   content.ItemType,
			OrderIndex: content.OrderIndex,
			Summary:    item.Summary(),
			Item:       item,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"module":   module,
		"contents": rows,
	})
}

// DeleteContent removes a content link and its item. The item goes
// first so no link ever points at a missing item. No confirmation step.
func DeleteContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	// Ownership via the module -> course -> owner chain
	var content courseModels.Content
	err := database.Database.Db.
		Joins("JOIN modules ON modules.id = contents.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("contents.id = ? AND contents.is_deleted = ? AND courses.owner_id = ? AND courses.is_deleted = ?",
			contentID, false, userID, false).
		First(&content).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	tx := database.Database.Db.Begin()

	// Item first, then the link row
	if err := deleteItem(tx, content.ItemType, content.ItemID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content item!", nil)
	}

	content.IsDeleted = true
	if err := tx.Save(&content).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	tx.Commit()

	return c.Redirect(fmt.Sprintf("/module/%d/content", content.ModuleID), fiber.StatusFound)
}

// deleteItem soft deletes the typed item behind a content link
func deleteItem(db *gorm.DB, itemType string, itemID uint) error {
	switch itemType {
	case courseModels.ItemTypeText:
		return db.Model(&courseModels.Text{}).Where("id = ?", itemID).Update("is_deleted", true).Error
	case courseModels.ItemTypeVideo:
		return db.Model(&courseModels.Video{}).Where("id = ?", itemID).Update("is_deleted", true).Error
	case courseModels.ItemTypeImage:
		return db.Model(&courseModels.Image{}).Where("id = ?", itemID).Update("is_deleted", true).Error
	case courseModels.ItemTypeFile:
		return db.Model(&courseModels.File{}).Where("id = ?", itemID).Update("is_deleted", true).Error
	}
	return gorm.ErrRecordNotFound
}
