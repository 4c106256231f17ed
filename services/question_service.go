package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fan-hub-api/models"
	"fan-hub-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionService struct {
	DB           *gorm.DB
	Gamification *GamificationService
	Quota        *QuotaService
}

func NewQuestionService(db *gorm.DB, gamification *GamificationService, quota *QuotaService) *QuestionService {
	return &QuestionService{DB: db, Gamification: gamification, Quota: quota}
}

// ListFilter narrows the main question listing.
type ListFilter struct {
	Category string
	Status   string
}

// List returns a page of questions, pinned first then newest. Without an
// explicit status filter only answered public questions are shown (the public
// Q&A wall).
func (s *QuestionService) List(page, limit int, filter ListFilter) ([]models.Question, utils.Pagination, error) {
	if filter.Category != "" && !models.ValidQuestionCategory(filter.Category) {
		return nil, utils.Pagination{}, utils.ValidationError("invalid category")
	}
	if filter.Status != "" && !models.ValidQuestionStatus(filter.Status) {
		return nil, utils.Pagination{}, utils.ValidationError("invalid status")
	}
	page, limit, offset := utils.ParsePage(page, limit, utils.DefaultPageSize)

	// Fresh query per execution; reusing one chain for Count and Find would
	// leak the COUNT select into the listing.
	base := func() *gorm.DB {
		q := s.DB.Model(&models.Question{})
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		} else {
			q = q.Where("status = ? AND is_public = ?", models.QuestionAnswered, true)
		}
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, err
	}

	var questions []models.Question
	if err := base().Order("is_pinned DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error; err != nil {
		return nil, utils.Pagination{}, err
	}
	resolveAnswerTypes(questions)
	return questions, utils.PageMeta(page, limit, total), nil
}

// SubmitQuestionInput is the accepted POST body.
type SubmitQuestionInput struct {
	Question string  `json:"question"`
	FanName  string  `json:"fanName"`
	FanID    *string `json:"fanId"`
	Category string  `json:"category"`
}

// Submit stores a new question after the daily quota check. The quota is
// evaluated before anything is persisted, so a rejected submission leaves no
// trace.
func (s *QuestionService) Submit(ctx context.Context, input SubmitQuestionInput, identityKey, ip string) (*models.Question, error) {
	text := strings.TrimSpace(input.Question)
	if text == "" {
		return nil, utils.ValidationError("question is required")
	}
	if len(text) > models.MaxQuestionLength {
		return nil, utils.ValidationError("question must be at most 500 characters")
	}
	category := input.Category
	if category == "" {
		category = "general"
	}
	if !models.ValidQuestionCategory(category) {
		return nil, utils.ValidationError("invalid category")
	}

	allowed, err := s.Quota.Allow(ctx, identityKey)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, utils.RateLimitError("Question limit reached. Try again tomorrow!")
	}

	fanName := strings.TrimSpace(input.FanName)
	if fanName == "" {
		fanName = "Anonymous Fan"
	}
	question := models.Question{
		ID:          uuid.NewString(),
		Text:        text,
		FanName:     fanName,
		FanID:       input.FanID,
		SubmitterIP: ip,
		Status:      models.QuestionPending,
		Category:    category,
		IsPublic:    true,
	}
	if err := s.DB.Create(&question).Error; err != nil {
		return nil, err
	}

	if input.FanID != nil && *input.FanID != "" {
		if _, err := s.Gamification.AwardPoints(*input.FanID, DefaultPointWeights.Question, ActivityQuestion); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	return &question, nil
}

// Answer records a reply and transitions the question to answered.
func (s *QuestionService) Answer(id, answer string) (*models.Question, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, utils.ValidationError("answer is required")
	}

	var question models.Question
	if err := s.DB.Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Question")
		}
		return nil, err
	}

	question.Answer = &answer
	question.Status = models.QuestionAnswered
	if err := s.DB.Save(&question).Error; err != nil {
		return nil, err
	}
	question.ResolveAnswerType()
	return &question, nil
}

// Like increments the persisted likes counter.
func (s *QuestionService) Like(id string) (int64, error) {
	res := s.DB.Model(&models.Question{}).Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, utils.NotFoundError("Question")
	}

	var question models.Question
	if err := s.DB.Select("likes").Where("id = ?", id).First(&question).Error; err != nil {
		return 0, err
	}
	return question.Likes, nil
}

// Pending lists unanswered questions, newest first (admin view).
func (s *QuestionService) Pending() ([]models.Question, error) {
	var questions []models.Question
	err := s.DB.Where("status = ?", models.QuestionPending).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

// Trending returns the most liked answered questions.
func (s *QuestionService) Trending(limit int) ([]models.Question, error) {
	var questions []models.Question
	err := s.DB.Where("status = ? AND is_public = ?", models.QuestionAnswered, true).
		Order("likes DESC, created_at DESC").
		Limit(utils.ClampLimit(limit, 10)).
		Find(&questions).Error
	resolveAnswerTypes(questions)
	return questions, err
}

// Search does a case-insensitive substring match over question and answer text.
func (s *QuestionService) Search(term string) ([]models.Question, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, utils.ValidationError("search term is required")
	}
	pattern := "%" + strings.ToLower(term) + "%"

	var questions []models.Question
	err := s.DB.Where("status = ? AND is_public = ?", models.QuestionAnswered, true).
		Where("LOWER(text) LIKE ? OR LOWER(COALESCE(answer, '')) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(utils.MaxPageSize).
		Find(&questions).Error
	resolveAnswerTypes(questions)
	return questions, err
}

// CategoryBucket is one row of the category distribution.
type CategoryBucket struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// QuestionSummary is the GET /api/questions/stats/summary payload.
type QuestionSummary struct {
	Total                int64            `json:"total"`
	Pending              int64            `json:"pending"`
	Answered             int64            `json:"answered"`
	Archived             int64            `json:"archived"`
	SubmittedToday       int64            `json:"submittedToday"`
	CategoryDistribution []CategoryBucket `json:"categoryDistribution"`
}

func (s *QuestionService) Summary() (*QuestionSummary, error) {
	out := &QuestionSummary{}

	if err := s.DB.Model(&models.Question{}).Count(&out.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		models.QuestionPending:  &out.Pending,
		models.QuestionAnswered: &out.Answered,
		models.QuestionArchived: &out.Archived,
	}
	for status, dest := range counts {
		if err := s.DB.Model(&models.Question{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, err
		}
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Question{}).Where("created_at >= ?", midnight).Count(&out.SubmittedToday).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Question{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&out.CategoryDistribution).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func resolveAnswerTypes(questions []models.Question) {
	for i := range questions {
		questions[i].ResolveAnswerType()
	}
}
