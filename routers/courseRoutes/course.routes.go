package courseRoutes

import (
	controllers "cboost/controllers/course"
	"cboost/middleware"
	validators "cboost/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up module, progress, certificate and stats routes
func SetupCourseRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Module content (public)
	api.Get("/modules", controllers.GetAllModules)
	api.Get("/modules/:id", controllers.GetModuleDetails)
	api.Get("/modules/:id/exercises", controllers.GetModuleExercises)

	// Progress tracking
	api.Put("/modules/:id/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateModuleProgress)
	api.Post("/modules/:id/lessons/:lessonId/complete", middleware.JWTMiddleware, controllers.CompleteLesson)
	api.Post("/exercises/:id/complete", middleware.JWTMiddleware, validators.CompleteExercise(), controllers.CompleteExercise)

	// Aggregates
	api.Get("/dashboard", middleware.JWTMiddleware, controllers.GetDashboard)
	api.Get("/stats", controllers.GetPlatformStats)

	// Certificates
	api.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	api.Post("/certificates/generate", middleware.JWTMiddleware, controllers.GenerateCourseCertificate)
}
