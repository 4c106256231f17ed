package models

import "time"

// Reactions a vote can carry.
var VoteReactions = []string{"💖", "🔥", "👏"}

const DefaultReaction = "💖"

// Vote records one counted vote for an outfit. IdentityKey is the fan's uuid
// when the voter is logged in, otherwise an "ip:<addr>" key. The composite
// unique index is what enforces one-vote-per-identity — duplicate inserts fail
// at the database, not via a racy pre-check.
type Vote struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	OutfitID    string  `gorm:"not null;uniqueIndex:idx_vote_outfit_identity" json:"outfitId"`
	FanID       *string `gorm:"type:uuid;index" json:"fanId,omitempty"`
	IdentityKey string  `gorm:"not null;uniqueIndex:idx_vote_outfit_identity" json:"-"`
	Reaction    string  `gorm:"default:'💖'" json:"reaction"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ValidReaction reports whether r is an accepted reaction.
func ValidReaction(r string) bool {
	for _, v := range VoteReactions {
		if v == r {
			return true
		}
	}
	return false
}
