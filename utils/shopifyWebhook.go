package utils

import (
	"cboost/config"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log"
)

// VerifyShopifyWebhook checks that a webhook payload was signed by Shopify.
// The signature is base64(HMAC-SHA256(secret, raw body)) from the
// X-Shopify-Hmac-Sha256 header. Comparison is constant time. Without a
// configured secret every webhook is rejected.
func VerifyShopifyWebhook(data []byte, signature string) bool {
	secret := config.AppConfig.ShopifyWebhookSecret
	if secret == "" {
		log.Println("SHOPIFY_WEBHOOK_SECRET not configured, rejecting webhook")
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(signature))
}
