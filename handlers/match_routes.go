// handlers/match_routes.go
package handlers

import (
	"strconv"

	"kickoff-hq-service/middleware"
	"kickoff-hq-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	group := app.Group("/match", middleware.UserContextMiddleware())

	group.Post("/simulate", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		result, err := matchService.SimulateMatch(userID)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, result)
	})

	group.Get("/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "7"))
		if days < 1 || days > 90 {
			days = 7
		}

		records, err := matchService.RecentMatches(userID, days)
		if err != nil {
			return fail(c, err)
		}

		history := make([]fiber.Map, 0, len(records))
		for _, r := range records {
			history = append(history, fiber.Map{
				"id":             r.ID,
				"won":            r.Won,
				"user_score":     r.UserScore,
				"opponent_score": r.OpponentScore,
				"opponent_name":  r.OpponentName,
				"opponent_ovr":   r.OpponentOvr,
				"reward_coins":   r.RewardCoins,
				"reward_xp":      r.RewardXP,
				"match_log":      r.MatchLog(),
				"played_at":      r.CreatedAt,
			})
		}
		return ok(c, history)
	})
}
