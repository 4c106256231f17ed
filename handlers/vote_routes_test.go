package handlers

import (
	"net/http"
	"testing"

	"fan-hub-api/models"
)

func TestPostVote(t *testing.T) {
	app, db := newTestApp(t)
	outfit := seedOutfit(t, db, "premiere")
	fan := seedFan(t, db, "voter1")

	resp, payload := doJSON(t, app, "POST", "/api/votes", map[string]interface{}{
		"outfitId": outfit.ID,
		"fanId":    fan.ID,
		"reaction": "💖",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (payload %v)", resp.StatusCode, payload)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v, want true", payload["success"])
	}

	data := payload["data"].(map[string]interface{})
	outfitData := data["outfit"].(map[string]interface{})
	if outfitData["votes"].(float64) != 1 {
		t.Errorf("votes = %v, want 1", outfitData["votes"])
	}
	if outfitData["percentage"].(float64) != 100 {
		t.Errorf("percentage = %v, want 100", outfitData["percentage"])
	}

	var reloaded models.Fan
	db.Where("id = ?", fan.ID).First(&reloaded)
	if reloaded.Points != 10 {
		t.Errorf("fan points = %d, want 10", reloaded.Points)
	}
}

func TestPostVoteDuplicate(t *testing.T) {
	app, db := newTestApp(t)
	outfit := seedOutfit(t, db, "encore")
	fan := seedFan(t, db, "voter2")

	body := map[string]interface{}{"outfitId": outfit.ID, "fanId": fan.ID}
	if resp, _ := doJSON(t, app, "POST", "/api/votes", body); resp.StatusCode != http.StatusOK {
		t.Fatalf("first vote status = %d, want 200", resp.StatusCode)
	}

	resp, payload := doJSON(t, app, "POST", "/api/votes", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate vote status = %d, want 400", resp.StatusCode)
	}
	if payload["success"] != false {
		t.Errorf("success = %v, want false", payload["success"])
	}

	var votes int64
	db.Model(&models.Vote{}).Where("outfit_id = ?", outfit.ID).Count(&votes)
	if votes != 1 {
		t.Errorf("vote records = %d, want 1", votes)
	}
}

func TestPostVoteUnknownOutfit(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/votes", map[string]interface{}{
		"outfitId": "no-such-outfit",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetVotesForOutfit(t *testing.T) {
	app, db := newTestApp(t)
	outfit := seedOutfit(t, db, "tour-look")
	fan := seedFan(t, db, "reactor")

	doJSON(t, app, "POST", "/api/votes", map[string]interface{}{
		"outfitId": outfit.ID, "fanId": fan.ID, "reaction": "🔥",
	})

	resp, payload := doJSON(t, app, "GET", "/api/votes/outfit/"+outfit.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data := payload["data"].(map[string]interface{})
	if data["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}
	reactions := data["reactions"].(map[string]interface{})
	if reactions["🔥"].(float64) != 1 {
		t.Errorf("🔥 tally = %v, want 1", reactions["🔥"])
	}
}

func TestDeleteVote(t *testing.T) {
	app, db := newTestApp(t)
	outfit := seedOutfit(t, db, "removable")

	_, payload := doJSON(t, app, "POST", "/api/votes", map[string]interface{}{
		"outfitId": outfit.ID,
	})
	voteID := payload["data"].(map[string]interface{})["vote"].(map[string]interface{})["id"].(string)

	resp, _ := doJSON(t, app, "DELETE", "/api/votes/"+voteID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	var reloaded models.Outfit
	db.Where("id = ?", outfit.ID).First(&reloaded)
	if reloaded.Votes != 0 {
		t.Errorf("cached counter = %d, want 0 after delete", reloaded.Votes)
	}
}
