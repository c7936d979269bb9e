package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coursehub/config"
	authController "coursehub/controllers/auth"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	courseModels "coursehub/models/course"
	authRoutes "coursehub/routers/authRoutes"
	courseRoutes "coursehub/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the full route table against an isolated in-memory
// database, mirroring main.go
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupManageCourseRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

// createUser inserts a user with seeded role permissions and returns it
// with a valid bearer token
func createUser(t *testing.T, role, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Role:     role,
		Password: "not-a-real-hash",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	require.NoError(t, authController.SeedPermissions(database.Database.Db, role, user.ID))

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func createSubject(t *testing.T, title, slug string) courseModels.Subject {
	t.Helper()

	subject := courseModels.Subject{Title: title, Slug: slug}
	require.NoError(t, database.Database.Db.Create(&subject).Error)
	return subject
}

func createCourse(t *testing.T, ownerID, subjectID uint, title, slug string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		OwnerID:   ownerID,
		SubjectID: subjectID,
		Title:     title,
		Slug:      slug,
		Overview:  "overview of " + title,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func createModule(t *testing.T, courseID uint, title string, order int) courseModels.Module {
	t.Helper()

	module := courseModels.Module{
		CourseID:    courseID,
		Title:       title,
		Description: "about " + title,
		OrderIndex:  order,
	}
	require.NoError(t, database.Database.Db.Create(&module).Error)
	return module
}

// doRequest performs a request against the app without following redirects
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}
