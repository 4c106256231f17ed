package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"fan-hub-api/models"
)

func TestSubmitQuestionQuota(t *testing.T) {
	app, db := newTestApp(t)

	// All requests come from the same (test) client IP.
	for i := 1; i <= 5; i++ {
		resp, payload := doJSON(t, app, "POST", "/api/questions", map[string]interface{}{
			"question": fmt.Sprintf("What is your favorite outfit #%d?", i),
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("question #%d status = %d, want 201 (payload %v)", i, resp.StatusCode, payload)
		}
	}

	resp, _ := doJSON(t, app, "POST", "/api/questions", map[string]interface{}{
		"question": "One too many?",
	})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("6th question status = %d, want 429", resp.StatusCode)
	}

	// The rejected question must not be persisted.
	var total int64
	db.Model(&models.Question{}).Count(&total)
	if total != 5 {
		t.Errorf("persisted questions = %d, want 5", total)
	}
}

func TestSubmitQuestionValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty text", map[string]interface{}{"question": "   "}},
		{"bad category", map[string]interface{}{"question": "hi?", "category": "gossip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, "POST", "/api/questions", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestAnswerAndListQuestions(t *testing.T) {
	app, _ := newTestApp(t)

	_, payload := doJSON(t, app, "POST", "/api/questions", map[string]interface{}{
		"question": "Where was the tour photo taken?",
		"fanName":  "curious-cat",
	})
	id := payload["data"].(map[string]interface{})["id"].(string)

	// Unanswered questions stay off the public wall.
	_, listPayload := doJSON(t, app, "GET", "/api/questions", nil)
	if n := len(listPayload["data"].([]interface{})); n != 0 {
		t.Fatalf("public wall shows %d questions before answering, want 0", n)
	}

	resp, answerPayload := doJSON(t, app, "PUT", "/api/questions/"+id+"/answer", map[string]interface{}{
		"answer": "https://videos.example.com/tour-answer",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("answer status = %d, want 200", resp.StatusCode)
	}
	answered := answerPayload["data"].(map[string]interface{})
	if answered["status"] != "answered" {
		t.Errorf("status = %v, want answered", answered["status"])
	}
	if answered["type"] != "video" {
		t.Errorf("answer type = %v, want video for URL answer", answered["type"])
	}

	_, listPayload = doJSON(t, app, "GET", "/api/questions", nil)
	if n := len(listPayload["data"].([]interface{})); n != 1 {
		t.Fatalf("public wall shows %d questions after answering, want 1", n)
	}
}

func TestLikeQuestionPersists(t *testing.T) {
	app, db := newTestApp(t)

	_, payload := doJSON(t, app, "POST", "/api/questions", map[string]interface{}{
		"question": "Likeable?",
	})
	id := payload["data"].(map[string]interface{})["id"].(string)

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, "POST", "/api/questions/"+id+"/like", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("like #%d status = %d, want 200", i+1, resp.StatusCode)
		}
	}

	var question models.Question
	db.Where("id = ?", id).First(&question)
	if question.Likes != 3 {
		t.Errorf("likes = %d, want 3", question.Likes)
	}
}

func TestQuestionPagination(t *testing.T) {
	app, db := newTestApp(t)

	// Seed 25 answered public questions directly.
	for i := 0; i < 25; i++ {
		answer := "answer"
		q := models.Question{
			ID:       fmt.Sprintf("q-%02d", i),
			Text:     fmt.Sprintf("question %d", i),
			FanName:  "seeder",
			Answer:   &answer,
			Status:   models.QuestionAnswered,
			Category: "general",
			IsPublic: true,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seeding question %d: %v", i, err)
		}
	}

	resp, payload := doJSON(t, app, "GET", "/api/questions?page=2&limit=10", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if n := len(payload["data"].([]interface{})); n != 10 {
		t.Errorf("page 2 size = %d, want 10", n)
	}
	pagination := payload["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 25 {
		t.Errorf("total = %v, want 25", pagination["total"])
	}
	if pagination["pages"].(float64) != 3 {
		t.Errorf("pages = %v, want 3", pagination["pages"])
	}
}
