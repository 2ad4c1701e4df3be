package shopifyController

import (
	"cboost/config"
	"cboost/database"
	"cboost/models"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testWebhookSecret = "test-webhook-secret"

func setupWebhookApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		ShopifyWebhookSecret:  testWebhookSecret,
		ShopifyProductKeyword: "confiance",
		FrontendURL:           "http://localhost:3000",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/api/shopify/webhook/order-paid", OrderPaidWebhook)

	return app, db
}

func signPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, app *fiber.App, body, signature string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/shopify/webhook/order-paid", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const paidOrderPayload = `{
	"id": 450789469,
	"name": "#1042",
	"email": "a@b.com",
	"total_price": "197.00",
	"created_at": "2024-03-15T10:30:00Z",
	"financial_status": "paid",
	"billing_address": {"first_name": "Marie", "last_name": "Dupont"},
	"line_items": [{"name": "ConfianceBoost Premium"}]
}`

func TestWebhookRejectsBadSignature(t *testing.T) {
	app, db := setupWebhookApp(t)

	resp := postWebhook(t, app, paidOrderPayload, "not-a-real-signature")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postWebhook(t, app, paidOrderPayload, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count, "an unauthenticated webhook must not touch the store")
}

func TestWebhookRejectsWhenSecretMissing(t *testing.T) {
	app, _ := setupWebhookApp(t)
	config.AppConfig.ShopifyWebhookSecret = ""

	resp := postWebhook(t, app, paidOrderPayload, signPayload(testWebhookSecret, []byte(paidOrderPayload)))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookGrantsAccess(t *testing.T) {
	app, db := setupWebhookApp(t)

	resp := postWebhook(t, app, paidOrderPayload, signPayload(testWebhookSecret, []byte(paidOrderPayload)))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)
	require.True(t, user.AccessGranted)
	require.Equal(t, "shopify_purchase", user.AccessType)
	require.NotNil(t, user.ShopifyOrderID)
	require.Equal(t, int64(450789469), *user.ShopifyOrderID)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	app, db := setupWebhookApp(t)
	signature := signPayload(testWebhookSecret, []byte(paidOrderPayload))

	resp := postWebhook(t, app, paidOrderPayload, signature)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postWebhook(t, app, paidOrderPayload, signature)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "replaying the same delivery converges on one user")

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@b.com").First(&user).Error)
	require.True(t, user.AccessGranted)
}

func TestWebhookIgnoresUnpaidOrder(t *testing.T) {
	app, db := setupWebhookApp(t)

	payload := strings.Replace(paidOrderPayload, `"financial_status": "paid"`, `"financial_status": "pending"`, 1)
	resp := postWebhook(t, app, payload, signPayload(testWebhookSecret, []byte(payload)))
	require.Equal(t, http.StatusOK, resp.StatusCode, "irrelevant events are acknowledged, not rejected")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestWebhookIgnoresUnrelatedProduct(t *testing.T) {
	app, db := setupWebhookApp(t)

	payload := strings.Replace(paidOrderPayload, "ConfianceBoost Premium", "Gift Card", 1)
	resp := postWebhook(t, app, payload, signPayload(testWebhookSecret, []byte(payload)))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestWebhookAcknowledgesMalformedBody(t *testing.T) {
	app, db := setupWebhookApp(t)

	body := `{"id": not json`
	resp := postWebhook(t, app, body, signPayload(testWebhookSecret, []byte(body)))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}
