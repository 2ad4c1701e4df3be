package utils

import (
	"cboost/models"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrValidationFailed covers provider or store failures during access
// validation. The client only ever sees a generic message.
var ErrValidationFailed = errors.New("access validation failed")

// CreateShopifyUserAccess grants platform access for a verified order.
// Idempotent: an existing user matched by email or by stored order id is
// updated in place; replaying the same order never creates a duplicate
// account. The unique indexes on email and shopify_order_id make a
// concurrent duplicate insert fail instead of silently splitting the account.
// No progress records are created here; that happens on first authenticated
// activity.
func CreateShopifyUserAccess(db *gorm.DB, order *ShopifyOrder) (*models.User, error) {
	var user models.User
	created := false
	email := strings.ToLower(order.Email)

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("(email = ? OR shopify_order_id = ?) AND is_deleted = ?",
			email, order.OrderID, false).First(&user).Error

		if err == nil {
			// Update the existing user's commerce linkage in place
			updates := map[string]interface{}{
				"shopify_order_id":     order.OrderID,
				"shopify_order_number": order.OrderNumber,
				"access_type":          "shopify_purchase",
				"access_granted":       true,
			}
			if ts := order.PurchaseTime(); ts != nil {
				updates["purchase_date"] = ts
			}
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", user.ID).First(&user).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		name := order.CustomerName
		if name == "" {
			name = "Client ConfianceBoost"
		}

		orderID := order.OrderID
		user = models.User{
			Name:               name,
			Email:              email,
			EnrollmentDate:     time.Now(),
			ShopifyOrderID:     &orderID,
			ShopifyOrderNumber: order.OrderNumber,
			PurchasePrice:      order.TotalPrice,
			PurchaseDate:       order.PurchaseTime(),
			AccessType:         "shopify_purchase",
			AccessGranted:      true,
		}
		created = true
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	if created {
		go SendWelcomeEmail(user.Email, user.Name, order.OrderNumber)
	}

	return &user, nil
}

// ValidateShopifyAccess verifies a customer-supplied email and order
// reference against Shopify and provisions access on a match. Returns
// ErrOrderNotFound when no matching paid order exists; every other failure
// is logged and folded into ErrValidationFailed.
func ValidateShopifyAccess(db *gorm.DB, email, orderNumber string) (*models.User, *ShopifyOrder, error) {
	order, err := VerifyShopifyOrder(orderNumber, email)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		log.Printf("Error verifying Shopify order %s: %v", orderNumber, err)
		return nil, nil, ErrValidationFailed
	}

	user, err := CreateShopifyUserAccess(db, order)
	if err != nil {
		log.Printf("Error provisioning access for order %s: %v", order.OrderNumber, err)
		return nil, nil, ErrValidationFailed
	}

	return user, order, nil
}
