package handlers

import (
	"strconv"

	"fan-hub-api/services"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupFanRoutes(app *fiber.App, fanService *services.FanService) {
	fans := app.Group("/api/fans")

	// Static paths must register before /:id so they are not captured by it.
	fans.Get("/top", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		topFans, err := fanService.Top(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, topFans)
	})

	fans.Get("/recent", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		recent, err := fanService.RecentActive(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, recent)
	})

	fans.Get("/leaderboard/points", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		leaderboard, err := fanService.Leaderboard(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, leaderboard)
	})

	fans.Get("/stats/summary", func(c *fiber.Ctx) error {
		summary, err := fanService.Summary()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, summary)
	})

	fans.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		sort := c.Query("sort", "recent")

		list, pagination, err := fanService.List(page, limit, sort)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Paginated(c, list, pagination)
	})

	fans.Get("/:id", func(c *fiber.Ctx) error {
		fan, err := fanService.Get(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, fan)
	})

	fans.Get("/:id/stats", func(c *fiber.Ctx) error {
		stats, err := fanService.ProfileStats(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, stats)
	})

	fans.Post("/", func(c *fiber.Ctx) error {
		var input services.CreateFanInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		fan, err := fanService.Create(input)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, fan, "Fan profile created successfully")
	})

	fans.Put("/:id", func(c *fiber.Ctx) error {
		var input services.UpdateFanInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		fan, err := fanService.Update(c.Params("id"), input)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, fan, "Profile updated successfully")
	})

	fans.Post("/:id/activity", func(c *fiber.Ctx) error {
		if err := fanService.TouchActivity(c.Params("id")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, nil, "Activity updated")
	})
}
