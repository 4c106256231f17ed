package services

import (
	"path/filepath"
	"testing"
	"time"

	"fan-hub-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway sqlite database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createTestFan(t *testing.T, db *gorm.DB, username string) *models.Fan {
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
		t.Fatalf("failed to create test fan: %v", err)
	}
	return &fan
}

func createTestOutfit(t *testing.T, db *gorm.DB, title string) *models.Outfit {
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
		t.Fatalf("failed to create test outfit: %v", err)
	}
	return &outfit
}
