// handlers/mission_routes.go
package handlers

import (
	"kickoff-hq-service/middleware"
	"kickoff-hq-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService) {
	group := app.Group("/missions", middleware.UserContextMiddleware())

	// Today's set, seeded on first access each UTC day.
	group.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		missions, err := missionService.EnsureDailyMissions(userID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, missions)
	})

	group.Post("/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		missionID := c.Params("id")

		mission, err := missionService.ClaimMissionReward(userID, missionID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, mission)
	})
}
