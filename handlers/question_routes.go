package handlers

import (
	"strconv"

	"fan-hub-api/middleware"
	"fan-hub-api/services"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App, questionService *services.QuestionService) {
	questions := app.Group("/api/questions")

	questions.Get("/pending", func(c *fiber.Ctx) error {
		pending, err := questionService.Pending()
		if err != nil {
			return utils.Fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": pending, "total": len(pending)})
	})

	questions.Get("/trending", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		trending, err := questionService.Trending(limit)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, trending)
	})

	questions.Get("/stats/summary", func(c *fiber.Ctx) error {
		summary, err := questionService.Summary()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, summary)
	})

	questions.Get("/category/:category", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		list, pagination, err := questionService.List(page, limit, services.ListFilter{
			Category: c.Params("category"),
		})
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Paginated(c, list, pagination)
	})

	questions.Get("/search/:term", func(c *fiber.Ctx) error {
		results, err := questionService.Search(c.Params("term"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": results, "total": len(results)})
	})

	questions.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		list, pagination, err := questionService.List(page, limit, services.ListFilter{
			Category: c.Query("category"),
			Status:   c.Query("status"),
		})
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Paginated(c, list, pagination)
	})

	questions.Post("/", func(c *fiber.Ctx) error {
		var input services.SubmitQuestionInput
		if err := c.BodyParser(&input); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}

		ip, _ := c.Locals("client_ip").(string)
		identity := middleware.IdentityKey(c, input.FanID)
		question, err := questionService.Submit(c.Context(), input, identity, ip)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, question, "Question submitted successfully! It will be answered soon.")
	})

	questions.Put("/:id/answer", func(c *fiber.Ctx) error {
		var body struct {
			Answer string `json:"answer"`
		}
		if err := c.BodyParser(&body); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		question, err := questionService.Answer(c.Params("id"), body.Answer)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, question, "Question answered successfully")
	})

	questions.Post("/:id/like", func(c *fiber.Ctx) error {
		likes, err := questionService.Like(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, fiber.Map{"id": c.Params("id"), "likes": likes})
	})
}
