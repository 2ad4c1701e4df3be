package controllers

import (
	"cboost/database"
	"cboost/middleware"
	"cboost/models"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// derivedPercentage computes the progress percentage from completed lesson
// count, rounding down. This is the only place the percentage comes from.
func derivedPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return completed * 100 / total
}

// GetOrCreateProgress loads the (user, module) record, creating a NOT_STARTED
// one on first interaction
func GetOrCreateProgress(db *gorm.DB, userID, moduleID uint) (*models.ModuleProgress, error) {
	var record models.ModuleProgress
	err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = models.ModuleProgress{
		UserID:   userID,
		ModuleID: moduleID,
		Status:   models.ProgressNotStarted,
	}
	record.SetLessonIDs(nil)
	record.SetExerciseIDs(nil)

	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CompleteLesson marks a lesson as completed for the current user. Adding an
// id already in the set is a no-op. The percentage is recomputed on every
// change; the transition to COMPLETED happens exactly when it reaches 100 and
// fires the module certificate once.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID, err := c.ParamsInt("id")
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}
	lessonID, err := c.ParamsInt("lessonId")
	if err != nil || lessonID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND module_id = ? AND is_deleted = ?", lessonID, moduleID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var totalLessons int64
	if err := db.Model(&models.Lesson{}).Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&totalLessons).Error; err != nil {
		log.Printf("Error counting lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	record, err := GetOrCreateProgress(db, userID, uint(moduleID))
	if err != nil {
		log.Printf("Error loading progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	completed := record.LessonIDs()
	if models.ContainsID(completed, lesson.ID) {
		// Re-submitting a completed lesson changes nothing
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed.", record)
	}

	completed = append(completed, lesson.ID)
	record.SetLessonIDs(completed)
	record.Progress = derivedPercentage(len(completed), int(totalLessons))

	nowTs := time.Now()
	if record.Status == models.ProgressNotStarted {
		record.Status = models.ProgressInProgress
		record.StartedAt = &nowTs
	}

	justCompleted := false
	if record.Progress >= 100 && record.Status != models.ProgressCompleted {
		record.Status = models.ProgressCompleted
		record.CompletedAt = &nowTs // set exactly once, on this transition
		justCompleted = true
	}

	// The record save, certificate and aggregate refresh commit together so a
	// failed certificate cannot leave a COMPLETED record with no certificate
	var certificate *models.Certificate
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		if !justCompleted {
			return nil
		}
		cert, err := IssueModuleCertificate(tx, userID, uint(moduleID))
		if err != nil {
			return err
		}
		certificate = cert
		return RefreshUserAggregates(tx, userID)
	})
	if err != nil {
		log.Printf("Error completing lesson for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", fiber.Map{
		"progress":    record,
		"certificate": certificate,
	})
}

// CompleteExercise toggles an exercise's completion on the current user's
// record for the exercise's module. Idempotent in both directions.
func CompleteExercise(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	exerciseID, err := c.ParamsInt("id")
	if err != nil || exerciseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exercise id!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		Completed bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var exercise models.Exercise
	if err := db.Where("id = ? AND is_deleted = ?", exerciseID, false).First(&exercise).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exercise not found!", nil)
	}

	record, err := GetOrCreateProgress(db, userID, exercise.ModuleID)
	if err != nil {
		log.Printf("Error loading progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exercise!", nil)
	}

	ids := record.ExerciseIDs()
	if reqData.Completed {
		if !models.ContainsID(ids, exercise.ID) {
			ids = append(ids, exercise.ID)
		}
	} else {
		filtered := make([]uint, 0, len(ids))
		for _, id := range ids {
			if id != exercise.ID {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}
	record.SetExerciseIDs(ids)

	if record.Status == models.ProgressNotStarted && reqData.Completed {
		record.Status = models.ProgressInProgress
		nowTs := time.Now()
		record.StartedAt = &nowTs
	}

	if err := db.Save(record).Error; err != nil {
		log.Printf("Error saving progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exercise!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exercise updated successfully!", fiber.Map{
		"completed": reqData.Completed,
		"progress":  record,
	})
}

// RefreshUserAggregates recomputes the user's denormalized counters from
// progress records and certificates
func RefreshUserAggregates(db *gorm.DB, userID uint) error {
	var totalModules int64
	if err := db.Model(&models.Module{}).Where("is_deleted = ?", false).Count(&totalModules).Error; err != nil {
		return err
	}

	var completedModules int64
	if err := db.Model(&models.ModuleProgress{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.ProgressCompleted, false).
		Count(&completedModules).Error; err != nil {
		return err
	}

	var certificates int64
	if err := db.Model(&models.Certificate{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&certificates).Error; err != nil {
		return err
	}

	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"completed_modules":   completedModules,
		"total_progress":      derivedPercentage(int(completedModules), int(totalModules)),
		"certificates_earned": certificates,
	}).Error
}

// GetUserProgress returns the user's overall progress across modules
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalModules int64
	if err := db.Model(&models.Module{}).Where("is_deleted = ?", false).Count(&totalModules).Error; err != nil {
		log.Printf("Error counting modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var completedModules int64
	if err := db.Model(&models.ModuleProgress{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.ProgressCompleted, false).
		Count(&completedModules).Error; err != nil {
		log.Printf("Error counting completed modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"totalProgress":    derivedPercentage(int(completedModules), int(totalModules)),
		"completedModules": completedModules,
		"totalModules":     totalModules,
	})
}

// GetDashboard returns the user's profile, per-module progress, overall
// numbers and activity streak in one call
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	user.Password = ""

	var modules []models.Module
	if err := moduleQuery(db).Order("order_index asc").Find(&modules).Error; err != nil {
		log.Printf("Error fetching modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	var records []models.ModuleProgress
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&records).Error; err != nil {
		log.Printf("Error fetching progress records: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	byModule := make(map[uint]*models.ModuleProgress, len(records))
	for i := range records {
		byModule[records[i].ModuleID] = &records[i]
	}

	joined := make([]ModuleWithProgress, len(modules))
	completedModules := 0
	for i, module := range modules {
		joined[i] = ModuleWithProgress{Module: module, UserProgress: byModule[module.ID]}
		if record := byModule[module.ID]; record != nil && record.Status == models.ProgressCompleted {
			completedModules++
		}
	}

	var certificates int64
	if err := db.Model(&models.Certificate{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&certificates).Error; err != nil {
		log.Printf("Error counting certificates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"user":             user,
		"modules":          joined,
		"totalProgress":    derivedPercentage(completedModules, len(modules)),
		"completedModules": completedModules,
		"certificates":     certificates,
		"currentStreak":    activityStreak(records),
	})
}

// activityStreak counts consecutive days, ending today or yesterday, with at
// least one progress-record update
func activityStreak(records []models.ModuleProgress) int {
	activeDays := make(map[time.Time]bool)
	for _, record := range records {
		if record.StartedAt == nil {
			continue
		}
		activeDays[now.New(record.UpdatedAt).BeginningOfDay()] = true
	}
	if len(activeDays) == 0 {
		return 0
	}

	day := now.BeginningOfDay()
	if !activeDays[day] {
		// a streak survives until a full day is missed
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for activeDays[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
