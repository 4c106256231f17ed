package services

import (
	"errors"
	"math"
	"time"

	"fan-hub-api/models"
	"fan-hub-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteService struct {
	DB           *gorm.DB
	Gamification *GamificationService
}

func NewVoteService(db *gorm.DB, gamification *GamificationService) *VoteService {
	return &VoteService{DB: db, Gamification: gamification}
}

// CastVoteResult is what POST /api/votes returns: the vote plus the updated
// outfit counters.
type CastVoteResult struct {
	Vote   models.Vote   `json:"vote"`
	Outfit OutfitCounter `json:"outfit"`
}

type OutfitCounter struct {
	ID         string `json:"id"`
	Votes      int64  `json:"votes"`
	Percentage int    `json:"percentage"`
}

// CastVote inserts a vote for (outfit, identity). Uniqueness is enforced by
// the composite index on the votes table; a duplicate insert fails inside the
// transaction and nothing is counted. The outfit's cached counter is recounted
// from the votes table in the same transaction.
func (s *VoteService) CastVote(outfitID string, fanID *string, identityKey, reaction string) (*CastVoteResult, error) {
	if outfitID == "" {
		return nil, utils.ValidationError("outfitId is required")
	}
	if reaction == "" {
		reaction = models.DefaultReaction
	}
	if !models.ValidReaction(reaction) {
		return nil, utils.ValidationError("invalid reaction")
	}

	var vote models.Vote
	var votes int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var outfit models.Outfit
		if err := tx.Where("id = ? AND is_active = ?", outfitID, true).First(&outfit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Outfit")
			}
			return err
		}

		vote = models.Vote{
			ID:          uuid.NewString(),
			OutfitID:    outfitID,
			FanID:       fanID,
			IdentityKey: identityKey,
			Reaction:    reaction,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ConflictError("You have already voted for this outfit")
			}
			return err
		}

		if err := tx.Model(&models.Vote{}).Where("outfit_id = ?", outfitID).Count(&votes).Error; err != nil {
			return err
		}
		return tx.Model(&models.Outfit{}).Where("id = ?", outfitID).Update("votes", votes).Error
	})
	if err != nil {
		return nil, err
	}

	if fanID != nil && *fanID != "" {
		// Separate atomic update; a missing fan id does not undo the vote.
		if _, err := s.Gamification.AwardPoints(*fanID, DefaultPointWeights.Vote, ActivityVote); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}

	total, err := s.totalVotes()
	if err != nil {
		return nil, err
	}
	return &CastVoteResult{
		Vote: vote,
		Outfit: OutfitCounter{
			ID:         outfitID,
			Votes:      votes,
			Percentage: Percentage(votes, total),
		},
	}, nil
}

// OutfitVotes lists an outfit's votes newest-first, with voter usernames and
// a per-reaction tally.
func (s *VoteService) OutfitVotes(outfitID string) ([]VoteWithFan, map[string]int64, error) {
	var votes []models.Vote
	if err := s.DB.Where("outfit_id = ?", outfitID).
		Order("created_at DESC").
		Find(&votes).Error; err != nil {
		return nil, nil, err
	}

	usernames, err := s.fanUsernames(votes)
	if err != nil {
		return nil, nil, err
	}

	reactions := make(map[string]int64)
	out := make([]VoteWithFan, 0, len(votes))
	for _, v := range votes {
		reactions[v.Reaction]++
		name := "Anonymous Fan"
		if v.FanID != nil {
			if u, ok := usernames[*v.FanID]; ok {
				name = u
			}
		}
		out = append(out, VoteWithFan{Vote: v, FanName: name})
	}
	return out, reactions, nil
}

type VoteWithFan struct {
	models.Vote
	FanName string `json:"fanName"`
}

// VoteStats summarizes voting activity: totals, today's count and the top
// outfits by cached counter.
type VoteStats struct {
	TotalVotes int64           `json:"totalVotes"`
	TodayVotes int64           `json:"todayVotes"`
	TopOutfits []models.Outfit `json:"topOutfits"`
}

func (s *VoteService) Stats() (*VoteStats, error) {
	total, err := s.totalVotes()
	if err != nil {
		return nil, err
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	var today int64
	if err := s.DB.Model(&models.Vote{}).Where("created_at >= ?", midnight).Count(&today).Error; err != nil {
		return nil, err
	}

	var top []models.Outfit
	if err := s.DB.Where("is_active = ?", true).
		Order("votes DESC, created_at DESC").
		Limit(5).
		Find(&top).Error; err != nil {
		return nil, err
	}
	for i := range top {
		top[i].Percentage = Percentage(top[i].Votes, total)
	}

	return &VoteStats{TotalVotes: total, TodayVotes: today, TopOutfits: top}, nil
}

// DeleteVote removes a vote (admin path) and recounts the owning outfit's
// cached counter in the same transaction.
func (s *VoteService) DeleteVote(voteID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		if err := tx.Where("id = ?", voteID).First(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Vote")
			}
			return err
		}
		if err := tx.Delete(&vote).Error; err != nil {
			return err
		}

		var votes int64
		if err := tx.Model(&models.Vote{}).Where("outfit_id = ?", vote.OutfitID).Count(&votes).Error; err != nil {
			return err
		}
		return tx.Model(&models.Outfit{}).Where("id = ?", vote.OutfitID).Update("votes", votes).Error
	})
}

func (s *VoteService) totalVotes() (int64, error) {
	var total int64
	err := s.DB.Model(&models.Vote{}).Count(&total).Error
	return total, err
}

// fanUsernames resolves the distinct fan ids present in votes to usernames.
func (s *VoteService) fanUsernames(votes []models.Vote) (map[string]string, error) {
	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, v := range votes {
		if v.FanID != nil && !seen[*v.FanID] {
			seen[*v.FanID] = true
			ids = append(ids, *v.FanID)
		}
	}
	usernames := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return usernames, nil
	}

	var fans []models.Fan
	if err := s.DB.Select("id", "username").Where("id IN ?", ids).Find(&fans).Error; err != nil {
		return nil, err
	}
	for _, f := range fans {
		usernames[f.ID] = f.Username
	}
	return usernames, nil
}

// Percentage computes an outfit's share of all votes, 0 when nothing has been
// cast yet.
func Percentage(votes, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(total) * 100))
}
