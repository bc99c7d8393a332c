package services

import (
	"testing"

	"core/models"
)

func TestCreatePlayerDefaults(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlayerService(db)

	player, err := service.CreatePlayer(42, "NightOwl")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	if player.ID != 42 {
		t.Errorf("id = %d, want 42", player.ID)
	}
	if player.Rating != 1200 {
		t.Errorf("rating = %v, want the starting 1200", player.Rating)
	}
	if player.Gamertag != "NightOwl" {
		t.Errorf("gamertag = %q, want %q", player.Gamertag, "NightOwl")
	}

	if _, err := service.GetPlayerByID(42); err != nil {
		t.Errorf("GetPlayerByID failed: %v", err)
	}
	if _, err := service.GetPlayerByID(43); err == nil {
		t.Error("expected error for an unknown player")
	}
}

func TestGetAllPlayersOrderedByRating(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlayerService(db)

	createTestPlayer(t, db, 1, "Low", 1100)
	createTestPlayer(t, db, 2, "High", 1400)
	createTestPlayer(t, db, 3, "Mid", 1250)

	resp, err := service.GetAllPlayers(1, 10)
	if err != nil {
		t.Fatalf("GetAllPlayers failed: %v", err)
	}

	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}
	wantOrder := []uint{2, 3, 1}
	for i, p := range resp.Data {
		if p.ID != wantOrder[i] {
			t.Errorf("position %d is player %d, want %d", i, p.ID, wantOrder[i])
		}
	}

	top, err := service.GetTopPlayersByRating(2)
	if err != nil {
		t.Fatalf("GetTopPlayersByRating failed: %v", err)
	}
	if len(top) != 2 || top[0].ID != 2 || top[1].ID != 3 {
		t.Errorf("top players = %v, want players 2 and 3", top)
	}
}

func TestGetRatingHistoryAndPlayerMatches(t *testing.T) {
	db := setupTestDB(t)
	playerService := NewPlayerService(db)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	match := matchesForRound(t, db, tournament.ID, 1)[0]
	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(match.ID, 4, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	history, err := playerService.GetRatingHistoryByPlayerID(1)
	if err != nil {
		t.Fatalf("GetRatingHistoryByPlayerID failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history))
	}
	if history[0].RatingChange <= 0 {
		t.Errorf("winner rating change = %v, want positive", history[0].RatingChange)
	}
	if history[0].OpponentID == nil || *history[0].OpponentID != 4 {
		t.Error("opponent should be player 4")
	}

	matches, err := playerService.GetPlayerMatches(1, 1, 10)
	if err != nil {
		t.Fatalf("GetPlayerMatches failed: %v", err)
	}
	// Player 1 is in the round-1 match and, after winning, in the final
	if matches.Total != 2 {
		t.Errorf("player matches = %d, want 2", matches.Total)
	}
}
