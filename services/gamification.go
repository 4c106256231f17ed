package services

import (
	"log"
	"time"

	"fan-hub-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointWeights define how much each activity is worth.
type PointWeights struct {
	Vote     int
	Question int
	Download int
	Comment  int
}

var DefaultPointWeights = PointWeights{
	Vote:     10,
	Question: 5,
	Download: 2,
	Comment:  3,
}

// Activity tags accepted by AwardPoints.
const (
	ActivityVote     = "vote"
	ActivityQuestion = "question"
	ActivityDownload = "download"
	ActivityComment  = "comment"
)

// TopFanThreshold is the point total at which a fan is flagged as a top fan.
const TopFanThreshold = 100

type GamificationService struct {
	DB *gorm.DB
}

func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{DB: db}
}

// AwardPoints applies one activity's worth of progression to a fan: points,
// level, the matching stats counter, the top-fan flag and the badge sweep —
// all inside a single transaction so two near-simultaneous awards for the same
// fan cannot lose updates.
func (s *GamificationService) AwardPoints(fanID string, points int, activity string) (*models.Fan, error) {
	var updated *models.Fan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var fan models.Fan
		if err := tx.Where("id = ?", fanID).First(&fan).Error; err != nil {
			return err
		}

		fan.Points += points
		if fan.Points < 0 {
			fan.Points = 0
		}
		fan.Level = models.LevelForPoints(fan.Points)

		switch activity {
		case ActivityVote:
			fan.Stats.VotesGiven++
		case ActivityQuestion:
			fan.Stats.QuestionsAsked++
		case ActivityDownload:
			fan.Stats.WallpapersDownloaded++
		case ActivityComment:
			fan.Stats.CommentsPosted++
		}

		if fan.Points >= TopFanThreshold {
			fan.IsTopFan = true
		}
		fan.LastActive = time.Now()

		if err := tx.Save(&fan).Error; err != nil {
			return err
		}

		if err := sweepBadges(tx, &fan); err != nil {
			return err
		}

		updated = &models.Fan{}
		*updated = fan
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("points awarded: fan=%s +%d (%s) → points=%d level=%d",
		fanID, points, activity, updated.Points, updated.Level)
	return updated, nil
}

// sweepBadges appends every badge whose threshold the fan now meets and does
// not hold yet. Dedup is by name, with the (fan, name) unique index as a
// backstop, so running the sweep twice changes nothing.
func sweepBadges(tx *gorm.DB, fan *models.Fan) error {
	for _, trigger := range models.BadgeTriggers {
		if !meetsThreshold(fan, trigger.Threshold) {
			continue
		}

		var count int64
		if err := tx.Model(&models.FanBadge{}).
			Where("fan_id = ? AND name = ?", fan.ID, trigger.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		badge := models.FanBadge{
			ID:          uuid.NewString(),
			FanID:       fan.ID,
			Name:        trigger.Name,
			Icon:        trigger.Icon,
			Description: trigger.Description,
			EarnedAt:    time.Now(),
		}
		if err := tx.Create(&badge).Error; err != nil {
			return err
		}
		log.Printf("badge awarded: %q → fan=%s", trigger.Name, fan.ID)
	}
	return nil
}

func meetsThreshold(fan *models.Fan, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "votes_given":
			if fan.Stats.VotesGiven < required {
				return false
			}
		case "questions_asked":
			if fan.Stats.QuestionsAsked < required {
				return false
			}
		case "level":
			if int64(fan.Level) < required {
				return false
			}
		default:
			return false
		}
	}
	return true
}
