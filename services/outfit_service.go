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

type OutfitService struct {
	DB           *gorm.DB
	Gamification *GamificationService
}

func NewOutfitService(db *gorm.DB, gamification *GamificationService) *OutfitService {
	return &OutfitService{DB: db, Gamification: gamification}
}

// List returns active outfits ranked by votes, with percentage and ranking
// attached. The total used for percentages is the whole votes table.
func (s *OutfitService) List() ([]models.Outfit, error) {
	var outfits []models.Outfit
	if err := s.DB.Preload("Comments").
		Where("is_active = ?", true).
		Order("votes DESC, created_at DESC").
		Find(&outfits).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.Vote{}).Count(&total).Error; err != nil {
		return nil, err
	}
	for i := range outfits {
		outfits[i].Percentage = Percentage(outfits[i].Votes, total)
		outfits[i].Ranking = i + 1
	}
	return outfits, nil
}

// Get fetches one outfit with comments and a fresh percentage.
func (s *OutfitService) Get(id string) (*models.Outfit, error) {
	var outfit models.Outfit
	if err := s.DB.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("outfit_comments.created_at DESC")
	}).Where("id = ?", id).First(&outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Outfit")
		}
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.Vote{}).Count(&total).Error; err != nil {
		return nil, err
	}
	outfit.Percentage = Percentage(outfit.Votes, total)
	return &outfit, nil
}

// CreateOutfitInput is the accepted POST body.
type CreateOutfitInput struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsFeatured  bool   `json:"isFeatured"`
}

func (s *OutfitService) Create(input CreateOutfitInput) (*models.Outfit, error) {
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
		category = "other"
	}
	if !models.ValidOutfitCategory(category) {
		return nil, utils.ValidationError("invalid category")
	}

	outfit := models.Outfit{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        slug.Make(title),
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Category:    category,
		IsActive:    true,
		IsFeatured:  input.IsFeatured,
		Comments:    []models.OutfitComment{},
	}
	if err := s.DB.Create(&outfit).Error; err != nil {
		return nil, err
	}
	return &outfit, nil
}

// AddCommentInput is the accepted comment body.
type AddCommentInput struct {
	Text    string  `json:"text"`
	Emoji   string  `json:"emoji"`
	FanID   *string `json:"fanId"`
	FanName string  `json:"fanName"`
}

// AddComment attaches a comment to an active outfit; identified fans earn
// comment points.
func (s *OutfitService) AddComment(outfitID string, input AddCommentInput) (*models.OutfitComment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, utils.ValidationError("text is required")
	}
	if len(text) > 300 {
		return nil, utils.ValidationError("text must be at most 300 characters")
	}

	var outfit models.Outfit
	if err := s.DB.Where("id = ? AND is_active = ?", outfitID, true).First(&outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Outfit")
		}
		return nil, err
	}

	fanName := strings.TrimSpace(input.FanName)
	if fanName == "" {
		fanName = "Anonymous Fan"
	}
	comment := models.OutfitComment{
		ID:       uuid.NewString(),
		OutfitID: outfitID,
		FanID:    input.FanID,
		FanName:  fanName,
		Text:     text,
		Emoji:    input.Emoji,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, err
	}

	if input.FanID != nil && *input.FanID != "" {
		if _, err := s.Gamification.AwardPoints(*input.FanID, DefaultPointWeights.Comment, ActivityComment); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	return &comment, nil
}

// TrendingOutfit is one row of the weekly trending board.
type TrendingOutfit struct {
	models.Outfit
	RecentVotes int64 `json:"recentVotes"`
}

// TrendingWeekly groups the last 7 days of votes by outfit and joins the top N
// against the outfits table, preserving rank order.
func (s *OutfitService) TrendingWeekly(limit int) ([]TrendingOutfit, error) {
	limit = utils.ClampLimit(limit, 10)
	since := time.Now().AddDate(0, 0, -7)

	var rows []struct {
		OutfitID    string
		RecentVotes int64
	}
	if err := s.DB.Model(&models.Vote{}).
		Select("outfit_id, COUNT(*) as recent_votes").
		Where("created_at >= ?", since).
		Group("outfit_id").
		Order("recent_votes DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []TrendingOutfit{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.OutfitID)
	}
	var outfits []models.Outfit
	if err := s.DB.Where("id IN ?", ids).Find(&outfits).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Outfit, len(outfits))
	for _, o := range outfits {
		byID[o.ID] = o
	}

	trending := make([]TrendingOutfit, 0, len(rows))
	for i, r := range rows {
		o, ok := byID[r.OutfitID]
		if !ok {
			continue // vote for a since-removed outfit
		}
		o.Ranking = i + 1
		trending = append(trending, TrendingOutfit{Outfit: o, RecentVotes: r.RecentVotes})
	}
	return trending, nil
}
