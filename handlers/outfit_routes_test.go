package handlers

import (
	"net/http"
	"testing"
	"time"

	"fan-hub-api/models"

	"github.com/google/uuid"
)

func TestCreateAndListOutfits(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := doJSON(t, app, "POST", "/api/outfits", map[string]interface{}{
		"title":    "Met Gala 2026",
		"imageUrl": "https://example.com/met.jpg",
		"category": "stage",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (payload %v)", resp.StatusCode, payload)
	}
	created := payload["data"].(map[string]interface{})
	if created["slug"] != "met-gala-2026" {
		t.Errorf("slug = %v, want met-gala-2026", created["slug"])
	}

	resp, payload = doJSON(t, app, "GET", "/api/outfits", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	data := payload["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("list size = %d, want 1", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["ranking"].(float64) != 1 {
		t.Errorf("ranking = %v, want 1", first["ranking"])
	}
	if first["percentage"].(float64) != 0 {
		t.Errorf("percentage = %v, want 0 with no votes", first["percentage"])
	}
}

func TestCreateOutfitValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"imageUrl": "https://example.com/x.jpg"}},
		{"missing image", map[string]interface{}{"title": "No image"}},
		{"bad category", map[string]interface{}{"title": "x", "imageUrl": "y", "category": "pajamas"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, "POST", "/api/outfits", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestAddCommentAwardsPoints(t *testing.T) {
	app, db := newTestApp(t)
	outfit := seedOutfit(t, db, "commentable")
	fan := seedFan(t, db, "commenter")

	resp, _ := doJSON(t, app, "POST", "/api/outfits/"+outfit.ID+"/comment", map[string]interface{}{
		"text":  "Stunning look!",
		"emoji": "💖",
		"fanId": fan.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("comment status = %d, want 201", resp.StatusCode)
	}

	var reloaded models.Fan
	db.Where("id = ?", fan.ID).First(&reloaded)
	if reloaded.Points != 3 {
		t.Errorf("fan points = %d, want 3 for a comment", reloaded.Points)
	}
	if reloaded.Stats.CommentsPosted != 1 {
		t.Errorf("commentsPosted = %d, want 1", reloaded.Stats.CommentsPosted)
	}

	_, payload := doJSON(t, app, "GET", "/api/outfits/"+outfit.ID, nil)
	comments := payload["data"].(map[string]interface{})["comments"].([]interface{})
	if len(comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(comments))
	}
}

func TestTrendingWeekly(t *testing.T) {
	app, db := newTestApp(t)
	hot := seedOutfit(t, db, "hot-look")
	cold := seedOutfit(t, db, "cold-look")

	// Three recent votes for hot, one recent + one stale for cold.
	for i, ip := range []string{"ip:1.1.1.1", "ip:1.1.1.2", "ip:1.1.1.3"} {
		vote := models.Vote{
			ID: uuid.NewString(), OutfitID: hot.ID, IdentityKey: ip, Reaction: "💖",
		}
		if err := db.Create(&vote).Error; err != nil {
			t.Fatalf("seeding vote %d: %v", i, err)
		}
	}
	recent := models.Vote{ID: uuid.NewString(), OutfitID: cold.ID, IdentityKey: "ip:2.2.2.1", Reaction: "💖"}
	if err := db.Create(&recent).Error; err != nil {
		t.Fatalf("seeding recent vote: %v", err)
	}
	stale := models.Vote{ID: uuid.NewString(), OutfitID: cold.ID, IdentityKey: "ip:2.2.2.2", Reaction: "💖"}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("seeding stale vote: %v", err)
	}
	// Push the stale vote outside the 7-day window.
	if err := db.Model(&models.Vote{}).Where("id = ?", stale.ID).
		Update("created_at", time.Now().AddDate(0, 0, -10)).Error; err != nil {
		t.Fatalf("backdating vote: %v", err)
	}

	resp, payload := doJSON(t, app, "GET", "/api/outfits/trending/weekly", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data := payload["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("trending rows = %d, want 2", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["id"] != hot.ID {
		t.Errorf("top trending = %v, want %s", first["id"], hot.ID)
	}
	if first["recentVotes"].(float64) != 3 {
		t.Errorf("recentVotes = %v, want 3", first["recentVotes"])
	}
	second := data[1].(map[string]interface{})
	if second["recentVotes"].(float64) != 1 {
		t.Errorf("cold recentVotes = %v, want 1 (stale vote excluded)", second["recentVotes"])
	}
}
