package models

import (
	"time"

	"gorm.io/gorm"
)

// Outfit categories accepted by the API.
var OutfitCategories = []string{"casual", "formal", "stage", "streetwear", "vintage", "other"}

// Outfit is a votable look. Votes is a cached counter: the votes table is the
// source of truth and the counter is refreshed transactionally on every vote
// insert/delete (plus a periodic reconciliation sweep).
type Outfit struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"index" json:"slug"`
	ImageURL    string `gorm:"not null;type:text" json:"image"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Category    string `gorm:"default:'other';index" json:"category"`

	Votes      int64 `gorm:"default:0" json:"votes"`
	Percentage int   `gorm:"-" json:"percentage"` // derived at read/write time
	Ranking    int   `gorm:"-" json:"ranking,omitempty"`

	Comments []OutfitComment `gorm:"foreignKey:OutfitID" json:"comments"`

	IsActive   bool `gorm:"default:true" json:"isActive"`
	IsFeatured bool `gorm:"default:false" json:"isFeatured"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// OutfitComment is a short fan reaction attached to an outfit.
type OutfitComment struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	OutfitID string  `gorm:"not null;index" json:"-"`
	FanID    *string `gorm:"type:uuid" json:"fanId,omitempty"`
	FanName  string  `gorm:"default:'Anonymous Fan'" json:"fanName"`
	Text     string  `gorm:"not null" json:"text"`
	Emoji    string  `json:"emoji,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ValidOutfitCategory reports whether c is an accepted category.
func ValidOutfitCategory(c string) bool {
	for _, v := range OutfitCategories {
		if v == c {
			return true
		}
	}
	return false
}
