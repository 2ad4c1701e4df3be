package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued once when a module (or the whole course, ModuleID 0)
// is completed. Never mutated after creation.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	ModuleID          uint      `json:"module_id" gorm:"index"` // 0 for the course certificate
	Title             string    `json:"title"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	DownloadURL       string    `json:"download_url"`
	IsDeleted         bool      `json:"-" gorm:"default:false"`
}
