package controllers

import (
	"cboost/database"
	"cboost/middleware"
	"cboost/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModuleWithProgress joins a module's static content with one user's record
type ModuleWithProgress struct {
	models.Module
	UserProgress *models.ModuleProgress `json:"user_progress,omitempty"`
}

func moduleQuery(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Preload("Resources", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false)
		})
}

// GetAllModules returns every training module with its nested content
func GetAllModules(c *fiber.Ctx) error {
	var modules []models.Module
	if err := moduleQuery(database.Database.Db).Order("order_index asc").Find(&modules).Error; err != nil {
		log.Printf("Error fetching modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// GetModuleDetails returns one module by id
func GetModuleDetails(c *fiber.Ctx) error {
	moduleID, err := c.ParamsInt("id")
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	var module models.Module
	if err := moduleQuery(database.Database.Db).Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

// GetModuleExercises returns the exercises of one module
func GetModuleExercises(c *fiber.Ctx) error {
	moduleID, err := c.ParamsInt("id")
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	var module models.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var exercises []models.Exercise
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Find(&exercises).Error; err != nil {
		log.Printf("Error fetching exercises for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exercises!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercises fetched successfully!", exercises)
}

// UpdateModuleProgress records activity on a module for the current user and
// returns the module joined with the refreshed record. The percentage is
// always recomputed from completed lessons; a client-supplied value never
// overrides it.
func UpdateModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID, err := c.ParamsInt("id")
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress         *int  `json:"progress"`
		Completed        bool  `json:"completed"`
		TimeSpentMinutes int64 `json:"time_spent_minutes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := moduleQuery(db).Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	record, err := GetOrCreateProgress(db, userID, module.ID)
	if err != nil {
		log.Printf("Error loading progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if record.Status == models.ProgressNotStarted {
		record.Status = models.ProgressInProgress
		now := time.Now()
		record.StartedAt = &now
	}
	if reqData.TimeSpentMinutes > 0 {
		record.TimeSpentMinutes += reqData.TimeSpentMinutes
	}
	record.Progress = derivedPercentage(len(record.LessonIDs()), len(module.Lessons))

	if err := db.Save(record).Error; err != nil {
		log.Printf("Error saving progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", ModuleWithProgress{
		Module:       module,
		UserProgress: record,
	})
}
