package authController_test

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
	"coursehub/database"
	"coursehub/models"
	authRoutes "coursehub/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return parsed
}

func TestSignupAndLogin(t *testing.T) {
	app := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "s3cret-pass",
		"role":     "INSTRUCTOR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	user := body["data"].(map[string]interface{})
	assert.Equal(t, "INSTRUCTOR", user["Role"])
	assert.Empty(t, user["Password"])

	// Instructors get the full course permission set
	var permCount int64
	database.Database.Db.Model(&models.Permission{}).Where("role = ?", "INSTRUCTOR").Count(&permCount)
	assert.EqualValues(t, 5, permCount)

	login := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, login.StatusCode)
	loginData := decode(t, login)["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
}

// Unknown roles collapse to STUDENT, never anything privileged
func TestSignupForcesStudentRole(t *testing.T) {
	app := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "s3cret-pass",
		"role":     "ADMIN",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "mallory@example.com").First(&user).Error)
	assert.Equal(t, "STUDENT", user.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupAuthApp(t)

	first := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "other-pass",
	})
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestLoginLockoutAfterThreeFailures(t *testing.T) {
	app := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for i := 0; i < 3; i++ {
		fail := postJSON(t, app, "/auth/login", fiber.Map{
			"email":    "ada@example.com",
			"password": "wrong-pass",
		})
		assert.Equal(t, http.StatusUnauthorized, fail.StatusCode, "attempt %d", i+1)
	}

	// Correct password no longer helps while the block holds
	blocked := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusUnauthorized, blocked.StatusCode)
	assert.Contains(t, decode(t, blocked)["message"], "blocked")
}
