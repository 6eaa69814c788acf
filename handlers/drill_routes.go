// handlers/drill_routes.go
package handlers

import (
	"strconv"

	"kickoff-hq-service/middleware"
	"kickoff-hq-service/models"
	"kickoff-hq-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDrillRoutes(app *fiber.App, drillService *services.DrillService) {
	group := app.Group("/drills", middleware.UserContextMiddleware())

	// Clients poll this to discover expired drills; there is no push channel.
	group.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		slots, err := drillService.ListSlots(userID)
		if err != nil {
			return fail(c, err)
		}
		catalog := make([]models.DrillInfo, 0, len(models.DrillCatalog))
		for _, info := range models.DrillCatalog {
			catalog = append(catalog, info)
		}
		return ok(c, fiber.Map{
			"slots":   slots,
			"catalog": catalog,
		})
	})

	group.Post("/:slot/start", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		slotIndex, err := strconv.Atoi(c.Params("slot"))
		if err != nil {
			return fail(c, services.ErrInvalidSlot)
		}

		var req struct {
			DrillType models.DrillType `json:"drill_type"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "invalid request body",
			})
		}

		slot, err := drillService.StartDrill(userID, slotIndex, req.DrillType)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, slot)
	})

	group.Post("/:slot/collect", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		slotIndex, err := strconv.Atoi(c.Params("slot"))
		if err != nil {
			return fail(c, services.ErrInvalidSlot)
		}

		reward, err := drillService.CollectDrillReward(userID, slotIndex)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, reward)
	})
}
