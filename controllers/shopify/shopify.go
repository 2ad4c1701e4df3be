package shopifyController

import (
	"cboost/config"
	"cboost/database"
	"cboost/middleware"
	"cboost/utils"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidateAccess checks a customer-supplied email and order reference against
// Shopify and grants access on a match
func ValidateAccess(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAccess").(*struct {
		Email       string `json:"email"`
		OrderNumber string `json:"order_number"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	user, order, err := utils.ValidateShopifyAccess(database.Database.Db, reqData.Email, reqData.OrderNumber)
	if err != nil {
		if errors.Is(err, utils.ErrOrderNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false,
				"Nous n'avons pas trouvé votre commande ou elle n'est pas encore payée.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false,
			"Erreur lors de la validation de votre achat.", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accès accordé avec succès !", fiber.Map{
		"success":      true,
		"user":         user,
		"order":        order,
		"redirect_url": config.AppConfig.FrontendURL + "/dashboard",
	})
}

// orderPaidPayload mirrors the fields of Shopify's orders/paid webhook body
// that provisioning needs
type orderPaidPayload struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	TotalPrice      string `json:"total_price"`
	CreatedAt       string `json:"created_at"`
	FinancialStatus string `json:"financial_status"`
	BillingAddress  struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"billing_address"`
	LineItems []struct {
		Name string `json:"name"`
	} `json:"line_items"`
}

// OrderPaidWebhook handles Shopify's orders/paid notification. The signature
// over the raw body is the trust boundary: a bad signature is the only
// rejecting path. Recognized-but-irrelevant events (wrong product, not paid)
// are acknowledged with 200 so Shopify stops retrying; replays converge on
// the same user record.
func OrderPaidWebhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Shopify-Hmac-Sha256")

	if !utils.VerifyShopifyWebhook(body, signature) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	var payload orderPaidPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Error parsing webhook payload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook acknowledged.", nil)
	}

	if payload.FinancialStatus != "paid" || payload.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook acknowledged.", nil)
	}

	matched := false
	for _, item := range payload.LineItems {
		if utils.LineItemMatchesProduct(item.Name) {
			matched = true
			break
		}
	}
	if !matched {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook acknowledged.", nil)
	}

	order := &utils.ShopifyOrder{
		OrderID:         payload.ID,
		OrderNumber:     payload.Name,
		Email:           payload.Email,
		CustomerName:    strings.TrimSpace(payload.BillingAddress.FirstName + " " + payload.BillingAddress.LastName),
		TotalPrice:      payload.TotalPrice,
		CreatedAt:       payload.CreatedAt,
		FinancialStatus: payload.FinancialStatus,
	}

	if _, err := utils.CreateShopifyUserAccess(database.Database.Db, order); err != nil {
		// 500 makes Shopify redeliver; provisioning is idempotent so the
		// retry is safe
		log.Printf("Error provisioning access from webhook for order %s: %v", payload.Name, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process webhook!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access granted.", nil)
}
