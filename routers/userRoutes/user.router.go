package userRoutes

import (
	courseControllers "cboost/controllers/course"
	userControllers "cboost/controllers/userControllers"
	"cboost/middleware"
	userValidators "cboost/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Get("/progress", middleware.JWTMiddleware, courseControllers.GetUserProgress)
}
