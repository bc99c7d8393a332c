package services

import (
	"testing"
	"time"

	"core/models"
)

func TestReportScoreValidation(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	round1 := matchesForRound(t, db, tournament.ID, 1)
	match := round1[0] // player 1 vs player 4

	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 2, Score2: 2}); err == nil {
		t.Error("expected error for a drawn score")
	}

	if _, err := matchService.ReportScore(match.ID, 2, models.ReportScoreRequest{Score1: 3, Score2: 1}); err == nil {
		t.Error("expected error for a non-participant reporter")
	}

	final := matchesForRound(t, db, tournament.ID, 2)[0]
	if _, err := matchService.ReportScore(final.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err == nil {
		t.Error("expected error for a match that is not scheduled yet")
	}

	reported, err := matchService.ReportScore(match.ID, 4, models.ReportScoreRequest{Score1: 1, Score2: 3})
	if err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if reported.Status != models.MatchStatusReported {
		t.Errorf("status = %s, want %s", reported.Status, models.MatchStatusReported)
	}
	if reported.WinnerID == nil || *reported.WinnerID != 4 {
		t.Error("winner should be player 4")
	}
	if reported.ReportedByID == nil || *reported.ReportedByID != 4 {
		t.Error("reported_by should be player 4")
	}

	// A reported match cannot be reported again
	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err == nil {
		t.Error("expected error when reporting twice")
	}
}

func TestConfirmMatchValidation(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	round1 := matchesForRound(t, db, tournament.ID, 1)
	match := round1[0] // player 1 vs player 4

	if _, err := matchService.ConfirmMatch(match.ID, 4, false); err == nil {
		t.Error("expected error when confirming without a reported result")
	}

	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}

	if _, err := matchService.ConfirmMatch(match.ID, 1, false); err == nil {
		t.Error("expected error when the reporter confirms their own result")
	}
	if _, err := matchService.ConfirmMatch(match.ID, 2, false); err == nil {
		t.Error("expected error when a non-participant confirms")
	}

	confirmed, err := matchService.ConfirmMatch(match.ID, 4, false)
	if err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}
	if confirmed.Status != models.MatchStatusConfirmed {
		t.Errorf("status = %s, want %s", confirmed.Status, models.MatchStatusConfirmed)
	}
	if confirmed.ConfirmedAt == nil {
		t.Error("confirmed_at should be set")
	}
}

func TestConfirmAdvancesWinner(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	round1 := matchesForRound(t, db, tournament.ID, 1)

	if _, err := matchService.ReportScore(round1[0].ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(round1[0].ID, 4, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	final := matchesForRound(t, db, tournament.ID, 2)[0]
	if final.Player1ID == nil || *final.Player1ID != 1 {
		t.Error("winner of slot 0 should take slot 1 of the final")
	}
	if final.Status != models.MatchStatusWaiting {
		t.Errorf("final status = %s, want %s while one slot is empty", final.Status, models.MatchStatusWaiting)
	}

	// Ratings moved in both directions
	var winner, loser models.Player
	db.First(&winner, 1)
	db.First(&loser, 4)
	if winner.Rating <= 1490 {
		t.Errorf("winner rating = %v, should have increased from 1490", winner.Rating)
	}
	if loser.Rating >= 1460 {
		t.Errorf("loser rating = %v, should have decreased from 1460", loser.Rating)
	}
	if winner.Wins != 1 || winner.TotalMatches != 1 {
		t.Errorf("winner record = %d wins / %d matches, want 1 / 1", winner.Wins, winner.TotalMatches)
	}
	if loser.Losses != 1 || loser.TotalMatches != 1 {
		t.Errorf("loser record = %d losses / %d matches, want 1 / 1", loser.Losses, loser.TotalMatches)
	}

	var history []models.RatingHistory
	db.Where("match_id = ?", round1[0].ID).Find(&history)
	if len(history) != 2 {
		t.Errorf("rating history rows = %d, want 2", len(history))
	}

	// The loser is eliminated from the tournament
	var loserEntry models.TournamentPlayer
	db.Where("tournament_id = ? AND player_id = ?", tournament.ID, 4).First(&loserEntry)
	if !loserEntry.Eliminated {
		t.Error("loser should be eliminated")
	}
}

func TestFullBracketPlaythrough(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	round1 := matchesForRound(t, db, tournament.ID, 1)

	// Player 1 beats player 4, player 3 upsets player 2
	if _, err := matchService.ReportScore(round1[0].ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 0}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(round1[0].ID, 4, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}
	if _, err := matchService.ReportScore(round1[1].ID, 3, models.ReportScoreRequest{Score1: 1, Score2: 3}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(round1[1].ID, 2, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	// Round 1 is done, the tournament moved to round 2
	var current models.Tournament
	db.First(&current, tournament.ID)
	if current.CurrentRound != 2 {
		t.Errorf("current_round = %d, want 2", current.CurrentRound)
	}

	final := matchesForRound(t, db, tournament.ID, 2)[0]
	if final.Status != models.MatchStatusScheduled {
		t.Fatalf("final status = %s, want %s", final.Status, models.MatchStatusScheduled)
	}
	if *final.Player1ID != 1 || *final.Player2ID != 3 {
		t.Fatalf("final pairs %d vs %d, want 1 vs 3", *final.Player1ID, *final.Player2ID)
	}
	if final.Deadline == nil {
		t.Error("final should have a reporting deadline")
	}

	if _, err := matchService.ReportScore(final.ID, 3, models.ReportScoreRequest{Score1: 3, Score2: 2}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(final.ID, 1, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	// The confirmed final crowns the champion
	db.First(&current, tournament.ID)
	if current.Status != models.TournamentStatusCompleted {
		t.Errorf("status = %s, want %s", current.Status, models.TournamentStatusCompleted)
	}
	if current.WinnerID == nil || *current.WinnerID != 1 {
		t.Error("tournament winner should be player 1")
	}

	var champion models.Player
	db.First(&champion, 1)
	if champion.TournamentsWon != 1 {
		t.Errorf("tournaments_won = %d, want 1", champion.TournamentsWon)
	}
	if champion.Wins != 2 {
		t.Errorf("champion wins = %d, want 2", champion.Wins)
	}
}

func TestDisputeMatch(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	match := matchesForRound(t, db, tournament.ID, 1)[0]

	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}

	if _, err := matchService.DisputeMatch(match.ID, 2, false); err == nil {
		t.Error("expected error when a non-participant disputes")
	}

	disputed, err := matchService.DisputeMatch(match.ID, 4, false)
	if err != nil {
		t.Fatalf("DisputeMatch failed: %v", err)
	}

	if disputed.Status != models.MatchStatusScheduled {
		t.Errorf("status = %s, want %s", disputed.Status, models.MatchStatusScheduled)
	}
	if disputed.WinnerID != nil || disputed.ReportedByID != nil {
		t.Error("dispute should clear the reported result")
	}
	if disputed.Score1 != 0 || disputed.Score2 != 0 {
		t.Error("dispute should clear the scores")
	}
	if disputed.Deadline == nil {
		t.Error("dispute should set a fresh deadline")
	}

	// The match can be reported again
	if _, err := matchService.ReportScore(match.ID, 4, models.ReportScoreRequest{Score1: 0, Score2: 3}); err != nil {
		t.Errorf("re-report after dispute failed: %v", err)
	}
}

func TestResetMatch(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	match := matchesForRound(t, db, tournament.ID, 1)[0]

	if _, err := matchService.ResetMatch(match.ID); err == nil {
		t.Error("expected error when resetting an unconfirmed match")
	}

	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(match.ID, 4, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	reset, err := matchService.ResetMatch(match.ID)
	if err != nil {
		t.Fatalf("ResetMatch failed: %v", err)
	}

	if reset.Status != models.MatchStatusScheduled {
		t.Errorf("status = %s, want %s", reset.Status, models.MatchStatusScheduled)
	}
	if reset.WinnerID != nil {
		t.Error("reset should clear the winner")
	}

	// The advancement was rolled back
	final := matchesForRound(t, db, tournament.ID, 2)[0]
	if final.Player1ID != nil {
		t.Error("winner should be removed from the final")
	}

	// Ratings are back at their starting values, history is purged
	var winner, loser models.Player
	db.First(&winner, 1)
	db.First(&loser, 4)
	if winner.Rating != 1490 {
		t.Errorf("winner rating = %v, want 1490", winner.Rating)
	}
	if loser.Rating != 1460 {
		t.Errorf("loser rating = %v, want 1460", loser.Rating)
	}
	if winner.TotalMatches != 0 || loser.TotalMatches != 0 {
		t.Error("match counts should be reverted")
	}

	var count int64
	db.Model(&models.RatingHistory{}).Where("match_id = ?", match.ID).Count(&count)
	if count != 0 {
		t.Errorf("rating history rows = %d, want 0", count)
	}

	var loserEntry models.TournamentPlayer
	db.Where("tournament_id = ? AND player_id = ?", tournament.ID, 4).First(&loserEntry)
	if loserEntry.Eliminated {
		t.Error("loser should no longer be eliminated")
	}
}

func TestResetMatchRefusedWhenNextMatchPlayed(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	tournament := createTestBracket(t, db, 4)

	round1 := matchesForRound(t, db, tournament.ID, 1)

	for _, setup := range []struct {
		matchID   uint
		reporter  uint
		confirmer uint
	}{
		{round1[0].ID, 1, 4},
		{round1[1].ID, 2, 3},
	} {
		if _, err := matchService.ReportScore(setup.matchID, setup.reporter, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
			t.Fatalf("ReportScore failed: %v", err)
		}
		if _, err := matchService.ConfirmMatch(setup.matchID, setup.confirmer, false); err != nil {
			t.Fatalf("ConfirmMatch failed: %v", err)
		}
	}

	final := matchesForRound(t, db, tournament.ID, 2)[0]
	if _, err := matchService.ReportScore(final.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}
	if _, err := matchService.ConfirmMatch(final.ID, 2, false); err != nil {
		t.Fatalf("ConfirmMatch failed: %v", err)
	}

	// The final is confirmed, so round 1 results are frozen
	if _, err := matchService.ResetMatch(round1[0].ID); err == nil {
		t.Error("expected error when the next match already has a result")
	}

	// The final itself can be reset, which reopens the tournament
	if _, err := matchService.ResetMatch(final.ID); err != nil {
		t.Fatalf("ResetMatch on the final failed: %v", err)
	}

	var current models.Tournament
	db.First(&current, tournament.ID)
	if current.Status != models.TournamentStatusInProgress {
		t.Errorf("status = %s, want %s", current.Status, models.TournamentStatusInProgress)
	}
	if current.WinnerID != nil {
		t.Error("reset final should clear the tournament winner")
	}
}

func TestAutoValidation(t *testing.T) {
	db := setupTestDB(t)
	matchService := NewMatchService(db)
	autoValidation := NewAutoValidationService(db, matchService)
	tournament := createTestBracket(t, db, 4)

	match := matchesForRound(t, db, tournament.ID, 1)[0]

	if _, err := matchService.ReportScore(match.ID, 1, models.ReportScoreRequest{Score1: 3, Score2: 1}); err != nil {
		t.Fatalf("ReportScore failed: %v", err)
	}

	// A fresh report is not expired
	count, err := autoValidation.GetExpiredMatchesCount()
	if err != nil {
		t.Fatalf("GetExpiredMatchesCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expired matches = %d, want 0", count)
	}

	// Age the report past the 24h reporting window
	past := time.Now().Add(-25 * time.Hour)
	if err := db.Model(&models.Match{}).Where("id = ?", match.ID).Update("reported_at", past).Error; err != nil {
		t.Fatalf("failed to age the report: %v", err)
	}

	count, err = autoValidation.GetExpiredMatchesCount()
	if err != nil {
		t.Fatalf("GetExpiredMatchesCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expired matches = %d, want 1", count)
	}

	if err := autoValidation.ValidateExpiredMatches(); err != nil {
		t.Fatalf("ValidateExpiredMatches failed: %v", err)
	}

	var confirmed models.Match
	db.First(&confirmed, match.ID)
	if confirmed.Status != models.MatchStatusConfirmed {
		t.Errorf("status = %s, want %s after auto-validation", confirmed.Status, models.MatchStatusConfirmed)
	}
}
