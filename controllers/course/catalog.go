package controllers

import (
	"coursehub/database"
	"coursehub/middleware"
	courseModels "coursehub/models/course"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// SubjectWithCount is a subject annotated with its course count
type SubjectWithCount struct {
	courseModels.Subject
	TotalCourses int64 `json:"total_courses"`
}

// CourseWithCount is a course annotated with its module count
type CourseWithCount struct {
	courseModels.Course
	TotalModules int64 `json:"total_modules"`
}

// CatalogCourseList is the public course catalog: every subject with
// its course count and every course with its module count, optionally
// filtered by a subject slug
func CatalogCourseList(c *fiber.Ctx) error {
	db := database.Database.Db

	var subjects []SubjectWithCount
	if err := db.Model(&courseModels.Subject{}).
		Select("subjects.*, COUNT(courses.id) AS total_courses").
		Joins("LEFT JOIN courses ON courses.subject_id = subjects.id AND courses.is_deleted = ?", false).
		Where("subjects.is_deleted = ?", false).
		Group("subjects.id").
		Order("subjects.title asc").
		Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	coursesQuery := db.Model(&courseModels.Course{}).
		Select("courses.*, COUNT(modules.id) AS total_modules").
		Joins("LEFT JOIN modules ON modules.course_id = courses.id AND modules.is_deleted = ?", false).
		Where("courses.is_deleted = ?", false).
		Group("courses.id").
		Order("courses.created_at desc")

	var subject *courseModels.Subject
	if slug := c.Params("slug"); slug != "" {
		var s courseModels.Subject
		if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&s).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
		}
		subject = &s
		coursesQuery = coursesQuery.Where("courses.subject_id = ?", s.ID)
	}

	var courses []CourseWithCount
	if err := coursesQuery.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"subjects": subjects,
		"subject":  subject,
		"courses":  courses,
	})
}

// CatalogCourseDetail is the public course detail page: the course, its
// modules and an unbound enrollment form pre-filled with the course id
func CatalogCourseDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
		"enroll_form": fiber.Map{
			"course_id":  course.ID,
			"submit_url": fmt.Sprintf("/course/%d/enroll", course.ID),
		},
	})
}
