package shopifyRoutes

import (
	shopifyControllers "cboost/controllers/shopify"
	shopifyValidators "cboost/validators/shopify"

	"github.com/gofiber/fiber/v2"
)

// SetupShopifyRoutes wires the purchase-to-access endpoints. The webhook
// route carries no auth middleware; its trust boundary is the HMAC signature
// over the raw body.
func SetupShopifyRoutes(app *fiber.App) {
	shopifyGroup := app.Group("/api/shopify")

	shopifyGroup.Post("/validate-access", shopifyValidators.ValidateAccess(), shopifyControllers.ValidateAccess)
	shopifyGroup.Post("/webhook/order-paid", shopifyControllers.OrderPaidWebhook)
}
