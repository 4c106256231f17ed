package utils

import (
	"errors"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// Pagination is the metadata block attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// OKMessage writes a success envelope with a human message.
func OKMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": message})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// Paginated writes a success envelope with pagination metadata.
func Paginated(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "pagination": p})
}

// Fail translates a service error into the error envelope. *AppError keeps its
// status and message; everything else is a 500 with the detail suppressed
// outside development mode.
func Fail(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{"success": false, "error": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(appErr.Status).JSON(body)
	}

	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	body := fiber.Map{"success": false, "error": "Internal Server Error"}
	if os.Getenv("APP_ENV") == "development" {
		body["message"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
