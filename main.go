package main

import (
	"cboost/config"
	"cboost/database"
	authRoutes "cboost/routers/authRoutes"
	courseRoutes "cboost/routers/courseRoutes"
	shopifyRoutes "cboost/routers/shopifyRoutes"
	userRoutes "cboost/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization,X-Shopify-Hmac-Sha256", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Health check
	app.Get("/api/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ConfianceBoost API is running",
			"version": "1.0.0",
		})
	})

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	shopifyRoutes.SetupShopifyRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
