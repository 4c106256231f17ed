package models

import (
	"time"

	"gorm.io/gorm"
)

var WallpaperCategories = []string{"lifestyle", "fashion", "travel", "fitness", "art"}

// Watermark describes the overlay applied on the client when rendering a
// premium wallpaper. The API only stores the configuration.
type Watermark struct {
	Enabled  bool   `json:"enabled"`
	Text     string `json:"text,omitempty"`
	Position string `json:"position,omitempty"` // e.g. "bottom-right"
}

// Wallpaper is a downloadable image. Image and thumbnail are external URLs —
// this service never stores media.
type Wallpaper struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Slug         string `gorm:"index" json:"slug"`
	ImageURL     string `gorm:"not null;type:text" json:"image"`
	ThumbnailURL string `gorm:"type:text" json:"thumbnail,omitempty"`
	Category     string `gorm:"default:'lifestyle';index" json:"category"`
	Resolution   string `json:"resolution,omitempty"` // e.g. "1920x1080"

	Downloads int64 `gorm:"default:0" json:"downloads"`
	Likes     int64 `gorm:"default:0" json:"likes"`

	Tags []string `gorm:"serializer:json" json:"tags,omitempty"`

	IsPremium bool `gorm:"default:false" json:"isPremium"`
	IsActive  bool `gorm:"default:true" json:"isActive"`

	Watermark Watermark `gorm:"embedded;embeddedPrefix:watermark_" json:"watermark"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func ValidWallpaperCategory(c string) bool {
	for _, v := range WallpaperCategories {
		if v == c {
			return true
		}
	}
	return false
}
