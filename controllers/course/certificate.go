package controllers

import (
	"cboost/database"
	"cboost/middleware"
	"cboost/models"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const courseCertificateTitle = "Certificat de Formation - Confiance en Soi"

// IssueModuleCertificate creates the certificate for a completed module. A
// certificate already on file is returned unchanged, so the issuing side
// effect cannot recur.
func IssueModuleCertificate(db *gorm.DB, userID, moduleID uint) (*models.Certificate, error) {
	var existing models.Certificate
	err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, moduleID, false).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var module models.Module
	if err := db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return nil, err
	}

	certificate := models.Certificate{
		UserID:            userID,
		ModuleID:          moduleID,
		Title:             "Certificat - " + module.Title,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	certificate.DownloadURL = fmt.Sprintf("/api/certificates/%s/download", certificate.CertificateNumber)

	if err := db.Create(&certificate).Error; err != nil {
		return nil, err
	}
	return &certificate, nil
}

// GetUserCertificates lists the current user's certificates with module titles
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	type CertificateWithModule struct {
		models.Certificate
		ModuleTitle string `json:"module_title"`
	}

	var certificates []models.Certificate
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		log.Printf("Error fetching certificates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithModule, len(certificates))
	for i, cert := range certificates {
		result[i] = CertificateWithModule{Certificate: cert}
		if cert.ModuleID != 0 {
			var module models.Module
			if err := db.Where("id = ?", cert.ModuleID).First(&module).Error; err == nil {
				result[i].ModuleTitle = module.Title
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// GenerateCourseCertificate issues the whole-course certificate once every
// module is completed. Requesting it again returns the existing one.
func GenerateCourseCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalModules int64
	if err := db.Model(&models.Module{}).Where("is_deleted = ?", false).Count(&totalModules).Error; err != nil {
		log.Printf("Error counting modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	var completedModules int64
	if err := db.Model(&models.ModuleProgress{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.ProgressCompleted, false).
		Count(&completedModules).Error; err != nil {
		log.Printf("Error counting completed modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	if totalModules == 0 || completedModules < totalModules {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Vous devez terminer tous les modules pour obtenir le certificat", nil)
	}

	var existing models.Certificate
	if err := db.Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, 0, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", existing)
	}

	certificate := models.Certificate{
		UserID:            userID,
		ModuleID:          0,
		Title:             courseCertificateTitle,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	certificate.DownloadURL = fmt.Sprintf("/api/certificates/%s/download", certificate.CertificateNumber)

	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("Error creating course certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	if err := RefreshUserAggregates(db, userID); err != nil {
		log.Printf("Error refreshing user aggregates: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate generated successfully!", certificate)
}
