package handlers

import (
	"os"
	"time"

	"fan-hub-api/models"
	"fan-hub-api/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startedAt = time.Now()

// SetupPlatformRoutes registers the liveness/diagnostic endpoints and the
// trailing 404 handler. Must be called after every resource route is in place.
func SetupPlatformRoutes(app *fiber.App, db *gorm.DB) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	app.Get("/api/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Fan Hub API - ready to serve!",
		})
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":     true,
			"message":     "Fan Hub API is running!",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	})

	app.Get("/api/status", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "disconnected"
		}

		counts := fiber.Map{}
		for name, model := range map[string]interface{}{
			"fans":       &models.Fan{},
			"outfits":    &models.Outfit{},
			"votes":      &models.Vote{},
			"questions":  &models.Question{},
			"wallpapers": &models.Wallpaper{},
		} {
			var n int64
			if err := db.Model(model).Count(&n).Error; err != nil {
				return utils.Fail(c, err)
			}
			counts[name] = n
		}

		return utils.OKMessage(c, fiber.Map{
			"database":      dbStatus,
			"uptimeSeconds": int64(time.Since(startedAt).Seconds()),
			"counts":        counts,
		}, "API Status Check")
	})

	// Catch-all: everything unmatched gets a 404 echoing the attempted path.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
			"path":    c.OriginalURL(),
		})
	})
}
