package handlers

import (
	"strconv"

	"fan-hub-api/services"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupOutfitRoutes(app *fiber.App, outfitService *services.OutfitService) {
	outfits := app.Group("/api/outfits")

	outfits.Get("/trending/weekly", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		trending, err := outfitService.TrendingWeekly(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, trending)
	})

	outfits.Get("/", func(c *fiber.Ctx) error {
		list, err := outfitService.List()
		if err != nil {
			return utils.Fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": list, "total": len(list)})
	})

	outfits.Get("/:id", func(c *fiber.Ctx) error {
		outfit, err := outfitService.Get(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, outfit)
	})

	outfits.Post("/", func(c *fiber.Ctx) error {
		var input services.CreateOutfitInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		outfit, err := outfitService.Create(input)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, outfit, "Outfit created successfully")
	})

	outfits.Post("/:id/comment", func(c *fiber.Ctx) error {
		var input services.AddCommentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		comment, err := outfitService.AddComment(c.Params("id"), input)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, comment, "Comment added")
	})
}
