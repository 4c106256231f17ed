package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Question lifecycle states.
const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
	QuestionArchived = "archived"
)

var QuestionStatuses = []string{QuestionPending, QuestionAnswered, QuestionArchived}

var QuestionCategories = []string{"general", "fashion", "lifestyle", "career", "personal"}

// MaxQuestionLength bounds the submitted text.
const MaxQuestionLength = 500

// Question is a fan-submitted Q&A entry. Likes is a persisted counter mutated
// only by the like endpoint.
type Question struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Text        string  `gorm:"not null;type:text" json:"question"`
	FanName     string  `gorm:"default:'Anonymous Fan'" json:"fanName"`
	FanID       *string `gorm:"type:uuid;index" json:"fanId,omitempty"`
	SubmitterIP string  `json:"-"`

	Answer     *string `gorm:"type:text" json:"answer,omitempty"`
	AnswerType string  `gorm:"-" json:"type,omitempty"` // "text" or "video", derived from Answer

	Status   string `gorm:"default:'pending';index" json:"status"`
	Category string `gorm:"default:'general';index" json:"category"`

	Likes    int64 `gorm:"default:0" json:"likes"`
	IsPinned bool  `gorm:"default:false" json:"isPinned"`
	IsPublic bool  `gorm:"default:true" json:"isPublic"`

	CreatedAt time.Time      `json:"timestamp" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ResolveAnswerType fills the derived AnswerType field. A URL answer is a
// video reply, anything else is text.
func (q *Question) ResolveAnswerType() {
	if q.Answer == nil || *q.Answer == "" {
		q.AnswerType = ""
		return
	}
	if strings.HasPrefix(*q.Answer, "http://") || strings.HasPrefix(*q.Answer, "https://") {
		q.AnswerType = "video"
	} else {
		q.AnswerType = "text"
	}
}

func ValidQuestionStatus(s string) bool {
	for _, v := range QuestionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidQuestionCategory(c string) bool {
	for _, v := range QuestionCategories {
		if v == c {
			return true
		}
	}
	return false
}
