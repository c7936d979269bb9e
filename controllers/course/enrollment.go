package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	courseModels "coursehub/models/course"
	"coursehub/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the requesting user in a course
func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	// Check if course exists
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	// Create enrollment
	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: uint(courseID),
		Status:   "ENROLLED",
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	// Confirmation email (best effort)
	go func(email, name, courseTitle string) {
		if email == "" {
			return
		}
		if err := utils.SendEnrollmentEmail(email, name, courseTitle); err != nil {
			log.Printf("Enrollment email failed for %s: %v", email, err)
		}
	}(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}
