package handlers

import (
	"strconv"

	"fan-hub-api/services"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupWallpaperRoutes(app *fiber.App, wallpaperService *services.WallpaperService) {
	wallpapers := app.Group("/api/wallpapers")

	wallpapers.Get("/popular", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		popular, err := wallpaperService.Popular(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, popular)
	})

	wallpapers.Get("/categories", func(c *fiber.Ctx) error {
		categories, err := wallpaperService.Categories()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, categories)
	})

	wallpapers.Get("/search/:term", func(c *fiber.Ctx) error {
		results, err := wallpaperService.Search(c.Params("term"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": results, "total": len(results)})
	})

	wallpapers.Get("/stats/summary", func(c *fiber.Ctx) error {
		summary, err := wallpaperService.Summary()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, summary)
	})

	wallpapers.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "12"))
		sort := c.Query("sort", "newest")
		category := c.Query("category")

		list, pagination, err := wallpaperService.List(page, limit, sort, category)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Paginated(c, list, pagination)
	})

	wallpapers.Post("/", func(c *fiber.Ctx) error {
		var input services.CreateWallpaperInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		wallpaper, err := wallpaperService.Create(input)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, wallpaper, "Wallpaper created successfully")
	})

	wallpapers.Post("/:id/download", func(c *fiber.Ctx) error {
		var body struct {
			FanID *string `json:"fanId"`
		}
		// Body is optional for anonymous downloads.
		_ = c.BodyParser(&body)

		result, err := wallpaperService.TrackDownload(c.Params("id"), body.FanID)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, result, "Download tracked successfully")
	})

	wallpapers.Post("/:id/like", func(c *fiber.Ctx) error {
		likes, err := wallpaperService.Like(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, fiber.Map{"id": c.Params("id"), "likes": likes})
	})
}
