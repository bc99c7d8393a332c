package services

import (
	"testing"

	"core/models"
)

func TestStartTournamentFourPlayers(t *testing.T) {
	db := setupTestDB(t)
	tournament := createTestBracket(t, db, 4)

	if tournament.Status != models.TournamentStatusInProgress {
		t.Errorf("status = %s, want %s", tournament.Status, models.TournamentStatusInProgress)
	}
	if tournament.BracketSize != 4 {
		t.Errorf("bracket_size = %d, want 4", tournament.BracketSize)
	}
	if tournament.TotalRounds != 2 {
		t.Errorf("total_rounds = %d, want 2", tournament.TotalRounds)
	}
	if tournament.CurrentRound != 1 {
		t.Errorf("current_round = %d, want 1", tournament.CurrentRound)
	}
	if tournament.NbMatches != 3 {
		t.Errorf("nb_matches = %d, want 3", tournament.NbMatches)
	}

	round1 := matchesForRound(t, db, tournament.ID, 1)
	if len(round1) != 2 {
		t.Fatalf("round 1 has %d matches, want 2", len(round1))
	}

	// Seed 1 faces seed 4, seed 2 faces seed 3
	if *round1[0].Player1ID != 1 || *round1[0].Player2ID != 4 {
		t.Errorf("round 1 slot 0 pairs %d vs %d, want 1 vs 4", *round1[0].Player1ID, *round1[0].Player2ID)
	}
	if *round1[1].Player1ID != 2 || *round1[1].Player2ID != 3 {
		t.Errorf("round 1 slot 1 pairs %d vs %d, want 2 vs 3", *round1[1].Player1ID, *round1[1].Player2ID)
	}

	final := matchesForRound(t, db, tournament.ID, 2)
	if len(final) != 1 {
		t.Fatalf("round 2 has %d matches, want 1", len(final))
	}
	if final[0].NextMatchID != nil {
		t.Error("final should have no next match")
	}
	if final[0].Status != models.MatchStatusWaiting {
		t.Errorf("final status = %s, want %s", final[0].Status, models.MatchStatusWaiting)
	}

	for _, m := range round1 {
		if m.Status != models.MatchStatusScheduled {
			t.Errorf("round 1 slot %d status = %s, want %s", m.Slot, m.Status, models.MatchStatusScheduled)
		}
		if m.Deadline == nil {
			t.Errorf("round 1 slot %d has no deadline", m.Slot)
		}
		if m.NextMatchID == nil || *m.NextMatchID != final[0].ID {
			t.Errorf("round 1 slot %d does not point at the final", m.Slot)
		}
	}
	if round1[0].NextMatchSlot != 1 || round1[1].NextMatchSlot != 2 {
		t.Errorf("next match slots = %d, %d, want 1, 2", round1[0].NextMatchSlot, round1[1].NextMatchSlot)
	}
}

func TestStartTournamentWithByes(t *testing.T) {
	db := setupTestDB(t)
	tournament := createTestBracket(t, db, 6)

	if tournament.BracketSize != 8 {
		t.Errorf("bracket_size = %d, want 8", tournament.BracketSize)
	}
	if tournament.TotalRounds != 3 {
		t.Errorf("total_rounds = %d, want 3", tournament.TotalRounds)
	}

	round1 := matchesForRound(t, db, tournament.ID, 1)
	if len(round1) != 4 {
		t.Fatalf("round 1 has %d matches, want 4", len(round1))
	}

	// Top two seeds get the byes, no bye ever faces another bye
	byes := 0
	for _, m := range round1 {
		switch m.Status {
		case models.MatchStatusBye:
			byes++
			if m.WinnerID == nil {
				t.Errorf("bye at slot %d has no winner", m.Slot)
			}
			if m.ConfirmedAt == nil {
				t.Errorf("bye at slot %d is not confirmed", m.Slot)
			}
		case models.MatchStatusScheduled:
			if m.Player1ID == nil || m.Player2ID == nil {
				t.Errorf("scheduled match at slot %d is missing a player", m.Slot)
			}
		default:
			t.Errorf("round 1 slot %d has status %s", m.Slot, m.Status)
		}
	}
	if byes != 2 {
		t.Errorf("round 1 has %d byes, want 2", byes)
	}

	if *round1[0].WinnerID != 1 {
		t.Errorf("slot 0 bye winner = %d, want seed 1", *round1[0].WinnerID)
	}
	if *round1[2].WinnerID != 2 {
		t.Errorf("slot 2 bye winner = %d, want seed 2", *round1[2].WinnerID)
	}
	if *round1[1].Player1ID != 4 || *round1[1].Player2ID != 5 {
		t.Errorf("slot 1 pairs %d vs %d, want 4 vs 5", *round1[1].Player1ID, *round1[1].Player2ID)
	}
	if *round1[3].Player1ID != 3 || *round1[3].Player2ID != 6 {
		t.Errorf("slot 3 pairs %d vs %d, want 3 vs 6", *round1[3].Player1ID, *round1[3].Player2ID)
	}

	// Bye winners are already waiting in round 2
	round2 := matchesForRound(t, db, tournament.ID, 2)
	if len(round2) != 2 {
		t.Fatalf("round 2 has %d matches, want 2", len(round2))
	}
	if round2[0].Player1ID == nil || *round2[0].Player1ID != 1 {
		t.Error("seed 1 was not advanced into round 2")
	}
	if round2[1].Player1ID == nil || *round2[1].Player1ID != 2 {
		t.Error("seed 2 was not advanced into round 2")
	}
	for _, m := range round2 {
		if m.Status != models.MatchStatusWaiting {
			t.Errorf("round 2 slot %d status = %s, want %s", m.Slot, m.Status, models.MatchStatusWaiting)
		}
	}
}

func TestStartTournamentSeedsByRating(t *testing.T) {
	db := setupTestDB(t)
	tournament := createTestBracket(t, db, 4)

	var entries []models.TournamentPlayer
	if err := db.Where("tournament_id = ?", tournament.ID).Order("seed ASC").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load entries: %v", err)
	}

	// Players were created with descending ratings, so seeds follow player IDs
	for i, e := range entries {
		if e.Seed != i+1 {
			t.Errorf("entry %d has seed %d, want %d", i, e.Seed, i+1)
		}
		if e.PlayerID != uint(i+1) {
			t.Errorf("seed %d belongs to player %d, want %d", e.Seed, e.PlayerID, i+1)
		}
	}

	var player models.Player
	if err := db.First(&player, 1).Error; err != nil {
		t.Fatalf("failed to load player: %v", err)
	}
	if player.TournamentsPlayed != 1 {
		t.Errorf("tournaments_played = %d, want 1", player.TournamentsPlayed)
	}
}

func TestStartTournamentGuards(t *testing.T) {
	db := setupTestDB(t)
	tournamentService := NewTournamentService(db)
	bracketService := NewBracketService(db)

	createTestPlayer(t, db, 1, "Alpha", 1300)
	createTestPlayer(t, db, 2, "Beta", 1200)

	tournament, err := tournamentService.CreateTournament(models.CreateTournamentRequest{Name: "Guarded Cup"}, 1)
	if err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}

	if _, err := bracketService.StartTournament(tournament.ID, 1, false); err == nil {
		t.Error("expected error when starting with fewer than 2 entrants")
	}

	if _, err := tournamentService.SignUp(tournament.ID, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := tournamentService.SignUp(tournament.ID, 2); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := bracketService.StartTournament(tournament.ID, 2, false); err == nil {
		t.Error("expected error when a non-creator starts the tournament")
	}

	// An admin can start someone else's tournament
	if _, err := bracketService.StartTournament(tournament.ID, 2, true); err != nil {
		t.Errorf("admin start failed: %v", err)
	}

	if _, err := bracketService.StartTournament(tournament.ID, 1, false); err == nil {
		t.Error("expected error when starting an already started tournament")
	}
}

func TestGetBracket(t *testing.T) {
	db := setupTestDB(t)
	bracketService := NewBracketService(db)
	tournament := createTestBracket(t, db, 8)

	bracket, err := bracketService.GetBracket(tournament.ID)
	if err != nil {
		t.Fatalf("GetBracket failed: %v", err)
	}

	if len(bracket.Rounds) != 3 {
		t.Fatalf("bracket has %d rounds, want 3", len(bracket.Rounds))
	}

	wantNames := []string{"Quarterfinals", "Semifinals", "Final"}
	wantCounts := []int{4, 2, 1}
	for i, round := range bracket.Rounds {
		if round.Name != wantNames[i] {
			t.Errorf("round %d name = %q, want %q", i+1, round.Name, wantNames[i])
		}
		if len(round.Matches) != wantCounts[i] {
			t.Errorf("round %d has %d matches, want %d", i+1, len(round.Matches), wantCounts[i])
		}
	}
}

func TestGetBracketBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	tournamentService := NewTournamentService(db)
	bracketService := NewBracketService(db)

	createTestPlayer(t, db, 1, "Alpha", 1300)
	tournament, err := tournamentService.CreateTournament(models.CreateTournamentRequest{Name: "Not Started"}, 1)
	if err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}

	if _, err := bracketService.GetBracket(tournament.ID); err == nil {
		t.Error("expected error for a tournament without a bracket")
	}
}
