package authController

import (
	"cboost/config"
	"cboost/database"
	"cboost/middleware"
	"cboost/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a user account and pre-creates one progress record per
// existing module. A purchase-provisioned account (same email, no password
// yet) is claimed instead of rejected.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err == nil {
		if user.Password != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already registered!", nil)
		}

		// Claim the purchase-provisioned account
		user.Name = reqData.Name
		user.Password = string(hashedPassword)
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error claiming provisioned account: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}
	} else {
		user = models.User{
			Name:           reqData.Name,
			Email:          reqData.Email,
			Password:       string(hashedPassword),
			EnrollmentDate: time.Now(),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}
	}

	if err := SeedProgressRecords(db, user.ID); err != nil {
		log.Printf("Error seeding progress records: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to initialize progress!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	// Clean Response
	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User registered successfully.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// SeedProgressRecords creates a NOT_STARTED progress record for every module
// the user does not have one for yet
func SeedProgressRecords(db *gorm.DB, userID uint) error {
	var modules []models.Module
	if err := db.Where("is_deleted = ?", false).Find(&modules).Error; err != nil {
		return err
	}

	for _, module := range modules {
		var existing models.ModuleProgress
		err := db.Where("user_id = ? AND module_id = ?", userID, module.ID).First(&existing).Error
		if err == nil {
			continue
		}

		record := models.ModuleProgress{
			UserID:   userID,
			ModuleID: module.ID,
			Status:   models.ProgressNotStarted,
		}
		record.SetLessonIDs(nil)
		record.SetExerciseIDs(nil)

		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// A provisioned account without a password cannot log in until claimed
	if user.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}
