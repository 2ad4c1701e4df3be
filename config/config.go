package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password

	ShopifyStoreURL       string // https://your-store.myshopify.com
	ShopifyAccessToken    string
	ShopifyWebhookSecret  string
	ShopifyProductKeyword string // a line item name must contain this keyword
	ShopifyApiVersion     string

	FrontendURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "8001"),
		DBName:    getEnv("DB_NAME", "confianceboost"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		ShopifyStoreURL:       getEnv("SHOPIFY_STORE_URL", ""),
		ShopifyAccessToken:    getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyWebhookSecret:  getEnv("SHOPIFY_WEBHOOK_SECRET", ""),
		ShopifyProductKeyword: getEnv("SHOPIFY_PRODUCT_KEYWORD", "confiance"),
		ShopifyApiVersion:     getEnv("SHOPIFY_API_VERSION", "2023-10"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ShopifyWebhookSecret == "" {
		log.Println("Warning: SHOPIFY_WEBHOOK_SECRET not set. Incoming webhooks will be rejected.")
	}
	if AppConfig.ShopifyStoreURL == "" || AppConfig.ShopifyAccessToken == "" {
		log.Println("Warning: Shopify credentials not set. Order validation will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
