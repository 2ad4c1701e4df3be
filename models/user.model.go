package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string    `json:"name" gorm:"default:''"`
	Email          string    `json:"email" gorm:"unique;not null"`
	Password       string    `json:"-"` // empty for purchase-provisioned accounts
	EnrollmentDate time.Time `json:"enrollment_date"`

	CompletedModules   int `json:"completed_modules" gorm:"default:0"`
	TotalProgress      int `json:"total_progress" gorm:"default:0"`
	CertificatesEarned int `json:"certificates_earned" gorm:"default:0"`

	ShopifyOrderID     *int64     `json:"shopify_order_id" gorm:"uniqueIndex"`
	ShopifyOrderNumber string     `json:"shopify_order_number"`
	PurchasePrice      string     `json:"purchase_price"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	AccessType         string     `json:"access_type" gorm:"default:'registration'"` // registration, shopify_purchase
	AccessGranted      bool       `json:"access_granted" gorm:"default:false"`

	IsDeleted bool `json:"-" gorm:"default:false"`
}
