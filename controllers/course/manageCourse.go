package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	courseModels "coursehub/models/course"
	"coursehub/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// courseFormFields are the only course fields the management forms expose.
// Owner is never part of the form; it is stamped from the token.
var courseFormFields = []string{"subject_id", "title", "slug", "overview"}

// getOwnedCourse resolves a course by id restricted to the requesting
// owner. A course owned by someone else is indistinguishable from a
// missing one.
func getOwnedCourse(db *gorm.DB, courseID int, ownerID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND owner_id = ? AND is_deleted = ?", courseID, ownerID, false).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// ManageCourseList lists the courses owned by the requesting user
func ManageCourseList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("owner_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// CourseCreateForm describes the course form: the editable fields plus
// the available subjects
func CourseCreateForm(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subjects []courseModels.Subject
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("title asc").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course form fetched successfully!", fiber.Map{
		"fields":   courseFormFields,
		"subjects": subjects,
	})
}

// CreateCourse creates a new course owned by the requesting user
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		SubjectID uint   `json:"subject_id"`
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Overview  string `json:"overview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var subject courseModels.Subject
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	course := courseModels.Course{
		OwnerID:   userID, // always the acting user, never client input
		SubjectID: reqData.SubjectID,
		Title:     reqData.Title,
		Slug:      reqData.Slug,
		Overview:  reqData.Overview,
	}

	// Slug uniqueness is enforced by the unique index, not validated here
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	// Provision the chat room on the companion chat service (best effort)
	go func(courseID uint) {
		if err := utils.ProvisionChatRoom(courseID); err != nil {
			log.Printf("Chat room provisioning failed for course %d: %v", courseID, err)
		}
	}(course.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// CourseEditForm returns the course form bound to an existing course
func CourseEditForm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var subjects []courseModels.Subject
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("title asc").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course form fetched successfully!", fiber.Map{
		"fields":   courseFormFields,
		"subjects": subjects,
		"course":   course,
	})
}

// UpdateCourse updates an existing course owned by the requesting user
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		SubjectID uint   `json:"subject_id"`
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Overview  string `json:"overview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.SubjectID > 0 {
		var subject courseModels.Subject
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
		}
		course.SubjectID = reqData.SubjectID
	}
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Slug != "" {
		course.Slug = reqData.Slug
	}
	if reqData.Overview != "" {
		course.Overview = reqData.Overview
	}
	course.OwnerID = userID

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// CourseDeleteConfirm returns the confirmation payload shown before a
// course is actually deleted
func CourseDeleteConfirm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Confirm course deletion.", fiber.Map{
		"course":      course,
		"confirm_url": fmt.Sprintf("/course/%d/delete", course.ID),
	})
}

// DeleteCourse soft deletes a course with its modules and content links
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := getOwnedCourse(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := database.Database.Db.Begin()

	course.IsDeleted = true
	if err := tx.Save(course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	moduleIDs := tx.Model(&courseModels.Module{}).Select("id").Where("course_id = ?", course.ID)
	if err := tx.Model(&courseModels.Content{}).Where("module_id IN (?)", moduleIDs).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course contents!", nil)
	}

	if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course modules!", nil)
	}

	tx.Commit()

	return c.Redirect("/course/mine", fiber.StatusFound)
}
