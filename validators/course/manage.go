package courseValidator

import (
	"coursehub/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ============ Course Validators ============

// CreateCourse validates a course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubjectID uint   `json:"subject_id"`
			Title     string `json:"title"`
			Slug      string `json:"slug"`
			Overview  string `json:"overview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Overview = strings.TrimSpace(reqData.Overview)

		if reqData.SubjectID == 0 {
			errors["subject_id"] = "Subject is required!"
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Slug == "" {
			errors["slug"] = "Slug is required!"
		} else if !slugPattern.MatchString(reqData.Slug) {
			errors["slug"] = "Slug may only contain lowercase letters, digits and hyphens!"
		}

		if reqData.Overview == "" {
			errors["overview"] = "Overview is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a course update request
func UpdateCourse() fiber.Handler {
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
			SubjectID uint   `json:"subject_id"`
			Title     string `json:"title"`
			Slug      string `json:"slug"`
			Overview  string `json:"overview"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Slug = strings.TrimSpace(reqData.Slug)
		reqData.Overview = strings.TrimSpace(reqData.Overview)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Slug != "" && !slugPattern.MatchString(reqData.Slug) {
			errors["slug"] = "Slug may only contain lowercase letters, digits and hyphens!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates a numeric course id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
