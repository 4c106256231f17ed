package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fan-hub-api/middleware"
	"fan-hub-api/models"
	"fan-hub-api/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the full route surface against a throwaway sqlite database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Fan{},
		&models.FanBadge{},
		&models.Outfit{},
		&models.OutfitComment{},
		&models.Vote{},
		&models.Question{},
		&models.Wallpaper{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	app := fiber.New()
	app.Use(middleware.ClientIdentity())

	gamification := services.NewGamificationService(db)
	quota := services.NewQuotaService(nil, services.DailyQuestionLimit)

	SetupFanRoutes(app, services.NewFanService(db))
	SetupOutfitRoutes(app, services.NewOutfitService(db, gamification))
	SetupVoteRoutes(app, services.NewVoteService(db, gamification))
	SetupQuestionRoutes(app, services.NewQuestionService(db, gamification, quota))
	SetupWallpaperRoutes(app, services.NewWallpaperService(db, gamification))
	SetupPlatformRoutes(app, db)

	return app, db
}

// doJSON performs a request with an optional JSON body and decodes the
// response envelope into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decoding response %q: %v", raw, err)
		}
	}
	return resp, payload
}

func seedFan(t *testing.T, db *gorm.DB, username string) *models.Fan {
	t.Helper()

	now := time.Now()
	fan := models.Fan{
		ID:         uuid.NewString(),
		Username:   username,
		Level:      1,
		JoinedAt:   now,
		LastActive: now,
	}
	if err := db.Create(&fan).Error; err != nil {
		t.Fatalf("seeding fan: %v", err)
	}
	return &fan
}

func seedOutfit(t *testing.T, db *gorm.DB, title string) *models.Outfit {
	t.Helper()

	outfit := models.Outfit{
		ID:       uuid.NewString(),
		Title:    title,
		Slug:     title,
		ImageURL: "https://example.com/" + title + ".jpg",
		Category: "other",
		IsActive: true,
	}
	if err := db.Create(&outfit).Error; err != nil {
		t.Fatalf("seeding outfit: %v", err)
	}
	return &outfit
}
