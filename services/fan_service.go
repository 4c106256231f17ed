package services

import (
	"errors"
	"strings"
	"time"

	"fan-hub-api/models"
	"fan-hub-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FanService struct {
	DB *gorm.DB
}

func NewFanService(db *gorm.DB) *FanService {
	return &FanService{DB: db}
}

// fanSortModes maps the ?sort= values to deterministic two-key orderings.
var fanSortModes = map[string]string{
	"points": "points DESC, level DESC",
	"level":  "level DESC, points DESC",
	"oldest": "joined_at ASC, username ASC",
	"recent": "last_active DESC, joined_at DESC",
}

// List returns a page of fans. Email is never serialized (json:"-" on the model).
func (s *FanService) List(page, limit int, sort string) ([]models.Fan, utils.Pagination, error) {
	order, ok := fanSortModes[sort]
	if !ok {
		order = fanSortModes["recent"]
	}
	page, limit, offset := utils.ParsePage(page, limit, utils.DefaultPageSize)

	var fans []models.Fan
	if err := s.DB.Preload("Badges").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&fans).Error; err != nil {
		return nil, utils.Pagination{}, err
	}

	var total int64
	if err := s.DB.Model(&models.Fan{}).Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, err
	}
	return fans, utils.PageMeta(page, limit, total), nil
}

// Get fetches one fan with badges.
func (s *FanService) Get(id string) (*models.Fan, error) {
	var fan models.Fan
	if err := s.DB.Preload("Badges").Where("id = ?", id).First(&fan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Fan")
		}
		return nil, err
	}
	return &fan, nil
}

// CreateFanInput is the accepted POST body.
type CreateFanInput struct {
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Bio         string             `json:"bio"`
	Location    string             `json:"location"`
	Avatar      string             `json:"avatar"`
	SocialMedia models.SocialMedia `json:"socialMedia"`
}

// Create registers a fan profile. Username/email uniqueness comes from the
// DB indexes; violations map to field-specific 400s.
func (s *FanService) Create(input CreateFanInput) (*models.Fan, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, utils.ValidationError("username is required")
	}
	if len(username) < 2 || len(username) > 30 {
		return nil, utils.ValidationError("username must be between 2 and 30 characters")
	}
	if len(input.Bio) > 500 {
		return nil, utils.ValidationError("bio must be at most 500 characters")
	}

	now := time.Now()
	fan := models.Fan{
		ID:          uuid.NewString(),
		Username:    username,
		Bio:         input.Bio,
		Location:    input.Location,
		Avatar:      input.Avatar,
		SocialMedia: input.SocialMedia,
		Level:       1,
		JoinedAt:    now,
		LastActive:  now,
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		fan.Email = &email
	}

	if err := s.DB.Create(&fan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			field := "username"
			if fan.Email != nil {
				var count int64
				s.DB.Model(&models.Fan{}).Where("email = ?", *fan.Email).Count(&count)
				if count > 0 {
					field = "email"
				}
			}
			return nil, utils.DuplicateError(field)
		}
		return nil, err
	}
	return &fan, nil
}

// UpdateFanInput is the accepted PUT body; nil pointers mean "leave as is".
type UpdateFanInput struct {
	Bio         *string             `json:"bio"`
	Location    *string             `json:"location"`
	Avatar      *string             `json:"avatar"`
	SocialMedia *models.SocialMedia `json:"socialMedia"`
}

// Update applies a partial profile edit and bumps LastActive.
func (s *FanService) Update(id string, input UpdateFanInput) (*models.Fan, error) {
	fan, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Bio != nil {
		if len(*input.Bio) > 500 {
			return nil, utils.ValidationError("bio must be at most 500 characters")
		}
		fan.Bio = *input.Bio
	}
	if input.Location != nil {
		fan.Location = *input.Location
	}
	if input.Avatar != nil {
		fan.Avatar = *input.Avatar
	}
	if input.SocialMedia != nil {
		fan.SocialMedia = *input.SocialMedia
	}
	fan.LastActive = time.Now()

	if err := s.DB.Save(fan).Error; err != nil {
		return nil, err
	}
	return fan, nil
}

// TouchActivity bumps a fan's LastActive timestamp.
func (s *FanService) TouchActivity(id string) error {
	res := s.DB.Model(&models.Fan{}).Where("id = ?", id).Update("last_active", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("Fan")
	}
	return nil
}

// Top returns the highest-scoring fans.
func (s *FanService) Top(limit int) ([]models.Fan, error) {
	var fans []models.Fan
	err := s.DB.Preload("Badges").
		Order("points DESC, level DESC").
		Limit(utils.ClampLimit(limit, 10)).
		Find(&fans).Error
	return fans, err
}

// RecentActive returns the most recently active fans.
func (s *FanService) RecentActive(limit int) ([]models.Fan, error) {
	var fans []models.Fan
	err := s.DB.Order("last_active DESC, joined_at DESC").
		Limit(utils.ClampLimit(limit, 20)).
		Find(&fans).Error
	return fans, err
}

// Leaderboard is the points ranking used by the frontend leaderboard widget.
func (s *FanService) Leaderboard(limit int) ([]models.Fan, error) {
	var fans []models.Fan
	err := s.DB.Preload("Badges").
		Order("points DESC, level DESC").
		Limit(utils.ClampLimit(limit, 50)).
		Find(&fans).Error
	return fans, err
}

// FanProfileStats is the GET /api/fans/:id/stats payload.
type FanProfileStats struct {
	Level         int             `json:"level"`
	Points        int             `json:"points"`
	Badges        int             `json:"badges"`
	Stats         models.FanStats `json:"stats"`
	JoinedDaysAgo int             `json:"joinedDaysAgo"`
	IsVip         bool            `json:"isVip"`
}

func (s *FanService) ProfileStats(id string) (*FanProfileStats, error) {
	fan, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &FanProfileStats{
		Level:         fan.Level,
		Points:        fan.Points,
		Badges:        len(fan.Badges),
		Stats:         fan.Stats,
		JoinedDaysAgo: int(time.Since(fan.JoinedAt).Hours() / 24),
		IsVip:         fan.IsVip,
	}, nil
}

// LevelBucket is one row of the level distribution.
type LevelBucket struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// FanSummary is the GET /api/fans/stats/summary payload.
type FanSummary struct {
	TotalFans         int64         `json:"totalFans"`
	VipFans           int64         `json:"vipFans"`
	VerifiedFans      int64         `json:"verifiedFans"`
	ActiveTodayFans   int64         `json:"activeTodayFans"`
	NewFansThisWeek   int64         `json:"newFansThisWeek"`
	LevelDistribution []LevelBucket `json:"levelDistribution"`
	AveragePoints     float64       `json:"averagePoints"`
	AverageLevel      float64       `json:"averageLevel"`
}

func (s *FanService) Summary() (*FanSummary, error) {
	out := &FanSummary{}

	if err := s.DB.Model(&models.Fan{}).Count(&out.TotalFans).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Fan{}).Where("is_vip = ?", true).Count(&out.VipFans).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Fan{}).Where("is_verified = ?", true).Count(&out.VerifiedFans).Error; err != nil {
		return nil, err
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Fan{}).Where("last_active >= ?", midnight).Count(&out.ActiveTodayFans).Error; err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.DB.Model(&models.Fan{}).Where("joined_at >= ?", weekAgo).Count(&out.NewFansThisWeek).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Fan{}).
		Select("level, COUNT(*) as count").
		Group("level").
		Order("level ASC").
		Scan(&out.LevelDistribution).Error; err != nil {
		return nil, err
	}

	if out.TotalFans > 0 {
		row := struct {
			AvgPoints float64
			AvgLevel  float64
		}{}
		if err := s.DB.Model(&models.Fan{}).
			Select("AVG(points) as avg_points, AVG(level) as avg_level").
			Scan(&row).Error; err != nil {
			return nil, err
		}
		out.AveragePoints = row.AvgPoints
		out.AverageLevel = row.AvgLevel
	}
	return out, nil
}
