package authController

import (
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	var reqData models.User

	// Parse Request Body
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role != "INSTRUCTOR" {
		role = "STUDENT"
	}

	// Prepare User Struct for DB Entry
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     role,
		Password: string(hashedPassword),
	}

	// Create User
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	if err := SeedPermissions(db, newUser.Role, newUser.ID); err != nil {
		log.Printf("Error seeding permissions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// SeedPermissions seeds default permissions for a given role and user ID
func SeedPermissions(db *gorm.DB, role string, userID uint) error {
	permissions := getDefaultPermissions(role)

	var permissionRecords []models.Permission
	for _, p := range permissions {
		permissionRecords = append(permissionRecords, models.Permission{
			UserID:     userID,
			Role:       role,
			Permission: p,
		})
	}

	if err := db.Create(&permissionRecords).Error; err != nil {
		return err
	}

	return nil
}

// getDefaultPermissions returns the default permission strings for a role
func getDefaultPermissions(role string) []string {
	if role == "INSTRUCTOR" {
		return []string{
			"view-course",
			"add-course",
			"change-course",
			"delete-course",
			"enroll-course",
		}
	}
	return []string{
		"enroll-course",
	}
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > 15*time.Minute {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		database.Database.Db.Save(&user)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		// Block user after 3 failed attempts
		if user.FailedLoginAttempts >= 3 {
			user.IsBlocked = true

			unblockTime := now.Add(15 * time.Minute)
			user.BlockedUntil = &unblockTime
		}

		if err := database.Database.Db.Save(&user).Error; err != nil {
			log.Printf("Error updating failed login state: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Reset lockout state on successful login
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.IsBlocked = false
	user.BlockedUntil = nil
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error resetting login state: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}
