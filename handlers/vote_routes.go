package handlers

import (
	"fan-hub-api/middleware"
	"fan-hub-api/services"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
)

type castVoteBody struct {
	OutfitID string  `json:"outfitId"`
	FanID    *string `json:"fanId"`
	Reaction string  `json:"reaction"`
	VoteType string  `json:"voteType"` // legacy alias for reaction
}

func SetupVoteRoutes(app *fiber.App, voteService *services.VoteService) {
	votes := app.Group("/api/votes")

	votes.Post("/", func(c *fiber.Ctx) error {
		var body castVoteBody
		if err := c.BodyParser(&body); err != nil {
			return utils.Fail(c, utils.ValidationError("invalid request body"))
		}
		reaction := body.Reaction
		if reaction == "" {
			reaction = body.VoteType
		}

		identity := middleware.IdentityKey(c, body.FanID)
		result, err := voteService.CastVote(body.OutfitID, body.FanID, identity, reaction)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, result, "Vote cast successfully!")
	})

	votes.Get("/outfit/:id", func(c *fiber.Ctx) error {
		list, reactions, err := voteService.OutfitVotes(c.Params("id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, fiber.Map{
			"votes":     list,
			"reactions": reactions,
			"total":     len(list),
		})
	})

	votes.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := voteService.Stats()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.OK(c, stats)
	})

	votes.Delete("/:id", func(c *fiber.Ctx) error {
		if err := voteService.DeleteVote(c.Params("id")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.OKMessage(c, nil, "Vote removed")
	})
}
