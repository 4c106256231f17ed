package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialMedia holds the fan's public profile links.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// FanStats are denormalized activity counters (mirrors UserProgress-style columns
// so they stay sortable/aggregatable in SQL).
type FanStats struct {
	VotesGiven           int64 `json:"votesGiven" gorm:"default:0"`
	QuestionsAsked       int64 `json:"questionsAsked" gorm:"default:0"`
	WallpapersDownloaded int64 `json:"wallpapersDownloaded" gorm:"default:0"`
	CommentsPosted       int64 `json:"commentsPosted" gorm:"default:0"`
}

// Fan is a registered fan profile with gamified progression.
// Email is write-only: it is never serialized into API responses.
type Fan struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"uniqueIndex" json:"-"`

	Bio      string `gorm:"type:text" json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Avatar   string `gorm:"type:text" json:"avatar,omitempty"`

	SocialMedia SocialMedia `gorm:"embedded;embeddedPrefix:social_" json:"socialMedia"`

	// Core progression
	Points int `gorm:"default:0" json:"points"`
	Level  int `gorm:"default:1" json:"level"` // always points/100 + 1

	Stats  FanStats   `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Badges []FanBadge `gorm:"foreignKey:FanID" json:"badges"`

	JoinedAt   time.Time `json:"joinedAt"`
	LastActive time.Time `json:"lastActive"`

	IsVip      bool `gorm:"default:false" json:"isVip"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`
	IsTopFan   bool `gorm:"default:false" json:"isTopFan"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// LevelForPoints maps accumulated points to a level. Level 1 starts at 0 points
// and every 100 points is one level.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/100 + 1
}

// FanBadge is an earned achievement. The (fan, name) pair is unique so the badge
// sweep can never duplicate an award.
type FanBadge struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FanID       string    `gorm:"not null;uniqueIndex:idx_fan_badge_name" json:"-"`
	Name        string    `gorm:"not null;uniqueIndex:idx_fan_badge_name" json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// BadgeTrigger describes one badge threshold. Keys: "votes_given",
// "questions_asked", "level".
type BadgeTrigger struct {
	Name        string
	Icon        string
	Description string
	Threshold   map[string]int64
}

// BadgeTriggers is the static badge catalog, evaluated after every point award.
var BadgeTriggers = []BadgeTrigger{
	{
		Name:        "Voter",
		Icon:        "🗳️",
		Description: "Cast 10 outfit votes",
		Threshold:   map[string]int64{"votes_given": 10},
	},
	{
		Name:        "Super Voter",
		Icon:        "⚡",
		Description: "Cast 50 outfit votes",
		Threshold:   map[string]int64{"votes_given": 50},
	},
	{
		Name:        "Curious",
		Icon:        "❓",
		Description: "Asked 5 questions",
		Threshold:   map[string]int64{"questions_asked": 5},
	},
	{
		Name:        "Rising Star",
		Icon:        "🌟",
		Description: "Reached level 5",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Name:        "Super Fan",
		Icon:        "👑",
		Description: "Reached level 10",
		Threshold:   map[string]int64{"level": 10},
	},
}
