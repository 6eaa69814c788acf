// handlers/hq_routes.go
package handlers

import (
	"log"

	"kickoff-hq-service/middleware"
	"kickoff-hq-service/models"
	"kickoff-hq-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupHQRoutes(app *fiber.App, hqService *services.HQService) {
	group := app.Group("/hq", middleware.UserContextMiddleware())

	// Full snapshot, created lazily on first visit.
	group.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		snapshot, err := hqService.GetOrCreate(userID)
		if err != nil {
			log.Printf("DB Error loading HQ for %s: %v", userID, err)
			return fail(c, err)
		}
		return ok(c, snapshot)
	})

	group.Post("/buildings/:key/upgrade", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		key := models.BuildingKey(c.Params("key"))

		state, cost, err := hqService.UpgradeBuilding(userID, key)
		if err != nil {
			return fail(c, err)
		}
		level, _ := state.BuildingLevel(key)
		return ok(c, fiber.Map{
			"building": key,
			"level":    level,
			"cost":     cost,
			"coins":    state.Coins,
		})
	})

	group.Post("/units/:key/train", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		key := models.UnitKey(c.Params("key"))

		unit, cost, err := hqService.TrainUnit(userID, key)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, fiber.Map{
			"unit": unit,
			"cost": cost,
		})
	})

	group.Post("/decor/:id/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		decorID := c.Params("id")

		owned, cost, err := hqService.PurchaseDecor(userID, decorID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, fiber.Map{
			"decor_slots": owned,
			"cost":        cost,
		})
	})

	group.Get("/decor/catalog", func(c *fiber.Ctx) error {
		items := make([]models.DecorItem, 0, len(models.DecorCatalog))
		for _, it := range models.DecorCatalog {
			items = append(items, it)
		}
		return ok(c, items)
	})
}
