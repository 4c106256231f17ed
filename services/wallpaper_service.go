package services

import (
	"errors"
	"strings"
	"time"

	"fan-hub-api/models"
	"fan-hub-api/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type WallpaperService struct {
	DB           *gorm.DB
	Gamification *GamificationService
}

func NewWallpaperService(db *gorm.DB, gamification *GamificationService) *WallpaperService {
	return &WallpaperService{DB: db, Gamification: gamification}
}

var wallpaperSortModes = map[string]string{
	"popular": "downloads DESC, likes DESC",
	"oldest":  "created_at ASC, title ASC",
	"newest":  "created_at DESC, title ASC",
}

// List returns a page of active wallpapers with optional category filter.
func (s *WallpaperService) List(page, limit int, sort, category string) ([]models.Wallpaper, utils.Pagination, error) {
	if category != "" && !models.ValidWallpaperCategory(category) {
		return nil, utils.Pagination{}, utils.ValidationError("invalid category")
	}
	order, ok := wallpaperSortModes[sort]
	if !ok {
		order = wallpaperSortModes["newest"]
	}
	page, limit, offset := utils.ParsePage(page, limit, 12)

	base := func() *gorm.DB {
		q := s.DB.Model(&models.Wallpaper{}).Where("is_active = ?", true)
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, err
	}

	var wallpapers []models.Wallpaper
	if err := base().Order(order).Offset(offset).Limit(limit).Find(&wallpapers).Error; err != nil {
		return nil, utils.Pagination{}, err
	}
	return wallpapers, utils.PageMeta(page, limit, total), nil
}

// CreateWallpaperInput is the accepted POST body.
type CreateWallpaperInput struct {
	Title        string           `json:"title"`
	ImageURL     string           `json:"imageUrl"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Category     string           `json:"category"`
	Resolution   string           `json:"resolution"`
	Tags         []string         `json:"tags"`
	IsPremium    bool             `json:"isPremium"`
	Watermark    models.Watermark `json:"watermark"`
}

func (s *WallpaperService) Create(input CreateWallpaperInput) (*models.Wallpaper, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, utils.ValidationError("title is required")
	}
	if len(title) > 120 {
		return nil, utils.ValidationError("title must be at most 120 characters")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, utils.ValidationError("imageUrl is required")
	}
	category := input.Category
	if category == "" {
		category = "lifestyle"
	}
	if !models.ValidWallpaperCategory(category) {
		return nil, utils.ValidationError("invalid category")
	}

	wallpaper := models.Wallpaper{
		ID:           uuid.NewString(),
		Title:        title,
		Slug:         slug.Make(title),
		ImageURL:     input.ImageURL,
		ThumbnailURL: input.ThumbnailURL,
		Category:     category,
		Resolution:   input.Resolution,
		Tags:         input.Tags,
		IsPremium:    input.IsPremium,
		IsActive:     true,
		Watermark:    input.Watermark,
	}
	if err := s.DB.Create(&wallpaper).Error; err != nil {
		return nil, err
	}
	return &wallpaper, nil
}

// DownloadResult is the POST /:id/download payload.
type DownloadResult struct {
	ID          string `json:"id"`
	Downloads   int64  `json:"downloads"`
	DownloadURL string `json:"downloadUrl"`
}

// TrackDownload increments the download counter; identified fans earn
// download points.
func (s *WallpaperService) TrackDownload(id string, fanID *string) (*DownloadResult, error) {
	var wallpaper models.Wallpaper
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_active = ?", id, true).First(&wallpaper).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Wallpaper")
			}
			return err
		}
		if err := tx.Model(&wallpaper).
			Update("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
			return err
		}
		wallpaper.Downloads++
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fanID != nil && *fanID != "" {
		if _, err := s.Gamification.AwardPoints(*fanID, DefaultPointWeights.Download, ActivityDownload); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	return &DownloadResult{
		ID:          wallpaper.ID,
		Downloads:   wallpaper.Downloads,
		DownloadURL: wallpaper.ImageURL,
	}, nil
}

// Like increments the likes counter.
func (s *WallpaperService) Like(id string) (int64, error) {
	res := s.DB.Model(&models.Wallpaper{}).Where("id = ? AND is_active = ?", id, true).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, utils.NotFoundError("Wallpaper")
	}

	var wallpaper models.Wallpaper
	if err := s.DB.Select("likes").Where("id = ?", id).First(&wallpaper).Error; err != nil {
		return 0, err
	}
	return wallpaper.Likes, nil
}

// Popular returns the most downloaded wallpapers.
func (s *WallpaperService) Popular(limit int) ([]models.Wallpaper, error) {
	var wallpapers []models.Wallpaper
	err := s.DB.Where("is_active = ?", true).
		Order("downloads DESC, likes DESC").
		Limit(utils.ClampLimit(limit, 20)).
		Find(&wallpapers).Error
	return wallpapers, err
}

// Categories returns the distinct categories in use with their counts.
func (s *WallpaperService) Categories() ([]CategoryBucket, error) {
	var buckets []CategoryBucket
	err := s.DB.Model(&models.Wallpaper{}).
		Select("category, COUNT(*) as count").
		Where("is_active = ?", true).
		Group("category").
		Order("count DESC").
		Scan(&buckets).Error
	return buckets, err
}

// Search matches title and tags, case-insensitive substring.
func (s *WallpaperService) Search(term string) ([]models.Wallpaper, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, utils.ValidationError("search term is required")
	}
	pattern := "%" + strings.ToLower(term) + "%"

	var wallpapers []models.Wallpaper
	err := s.DB.Where("is_active = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(COALESCE(tags, '')) LIKE ?", pattern, pattern).
		Order("downloads DESC").
		Limit(utils.MaxPageSize).
		Find(&wallpapers).Error
	return wallpapers, err
}

// WallpaperSummary is the GET /api/wallpapers/stats/summary payload.
type WallpaperSummary struct {
	Total          int64            `json:"total"`
	TotalDownloads int64            `json:"totalDownloads"`
	TotalLikes     int64            `json:"totalLikes"`
	PremiumCount   int64            `json:"premiumCount"`
	AddedThisWeek  int64            `json:"addedThisWeek"`
	ByCategory     []CategoryBucket `json:"byCategory"`
}

func (s *WallpaperService) Summary() (*WallpaperSummary, error) {
	out := &WallpaperSummary{}

	if err := s.DB.Model(&models.Wallpaper{}).Where("is_active = ?", true).Count(&out.Total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Wallpaper{}).Where("is_premium = ? AND is_active = ?", true, true).
		Count(&out.PremiumCount).Error; err != nil {
		return nil, err
	}

	if out.Total > 0 {
		row := struct {
			Downloads int64
			Likes     int64
		}{}
		if err := s.DB.Model(&models.Wallpaper{}).
			Select("SUM(downloads) as downloads, SUM(likes) as likes").
			Where("is_active = ?", true).
			Scan(&row).Error; err != nil {
			return nil, err
		}
		out.TotalDownloads = row.Downloads
		out.TotalLikes = row.Likes
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.DB.Model(&models.Wallpaper{}).Where("created_at >= ? AND is_active = ?", weekAgo, true).
		Count(&out.AddedThisWeek).Error; err != nil {
		return nil, err
	}

	byCategory, err := s.Categories()
	if err != nil {
		return nil, err
	}
	out.ByCategory = byCategory
	return out, nil
}
