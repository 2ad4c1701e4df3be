package courseValidator

import (
	"cboost/middleware"

	"github.com/gofiber/fiber/v2"
)

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress         *int  `json:"progress"`
			Completed        bool  `json:"completed"`
			TimeSpentMinutes int64 `json:"time_spent_minutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Progress != nil && (*reqData.Progress < 0 || *reqData.Progress > 100) {
			errors["progress"] = "Progress must be between 0 and 100!"
		}
		if reqData.TimeSpentMinutes < 0 {
			errors["time_spent_minutes"] = "Time spent cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func CompleteExercise() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Completed bool `json:"completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
