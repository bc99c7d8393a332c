package services

import (
	"testing"

	"core/models"
)

func TestCreateTournamentDefaults(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	tournament, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Friday Night Fights!"}, 7)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	if tournament.Slug != "friday-night-fights" {
		t.Errorf("slug = %q, want %q", tournament.Slug, "friday-night-fights")
	}
	if tournament.Status != models.TournamentStatusRegistration {
		t.Errorf("status = %s, want %s", tournament.Status, models.TournamentStatusRegistration)
	}
	if tournament.MaxEntrants != 16 {
		t.Errorf("max_entrants = %d, want the default 16", tournament.MaxEntrants)
	}
	if tournament.ReportingWindowHours != 24 {
		t.Errorf("reporting_window_hours = %d, want the default 24", tournament.ReportingWindowHours)
	}
	if tournament.CreatedByID != 7 {
		t.Errorf("created_by_id = %d, want 7", tournament.CreatedByID)
	}
}

func TestCreateTournamentUniqueSlugs(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	first, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Weekly Clash"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	second, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Weekly Clash"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	third, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Weekly Clash"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	if first.Slug != "weekly-clash" {
		t.Errorf("first slug = %q, want %q", first.Slug, "weekly-clash")
	}
	if second.Slug != "weekly-clash-1" {
		t.Errorf("second slug = %q, want %q", second.Slug, "weekly-clash-1")
	}
	if third.Slug != "weekly-clash-2" {
		t.Errorf("third slug = %q, want %q", third.Slug, "weekly-clash-2")
	}

	found, err := service.GetTournamentBySlug("weekly-clash-1")
	if err != nil {
		t.Fatalf("GetTournamentBySlug failed: %v", err)
	}
	if found.ID != second.ID {
		t.Errorf("found tournament %d, want %d", found.ID, second.ID)
	}
}

func TestSignUpGuards(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	createTestPlayer(t, db, 1, "Alpha", 1300)
	createTestPlayer(t, db, 2, "Beta", 1250)
	createTestPlayer(t, db, 3, "Gamma", 1200)

	tournament, err := service.CreateTournament(models.CreateTournamentRequest{
		Name:        "Tiny Cup",
		MaxEntrants: 4,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	if _, err := service.SignUp(tournament.ID, 1); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if _, err := service.SignUp(tournament.ID, 1); err == nil {
		t.Error("expected error for a duplicate signup")
	}
	if _, err := service.SignUp(tournament.ID, 99); err == nil {
		t.Error("expected error for an unknown player")
	}
	if _, err := service.SignUp(999, 2); err == nil {
		t.Error("expected error for an unknown tournament")
	}

	current, err := service.GetTournamentByID(tournament.ID)
	if err != nil {
		t.Fatalf("GetTournamentByID failed: %v", err)
	}
	if current.NbEntrants != 1 {
		t.Errorf("nb_entrants = %d, want 1", current.NbEntrants)
	}
}

func TestSignUpFullTournament(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	for i := 1; i <= 5; i++ {
		createTestPlayer(t, db, uint(i), "player", 1200)
	}

	tournament, err := service.CreateTournament(models.CreateTournamentRequest{
		Name:        "Four Max",
		MaxEntrants: 4,
	}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	for i := 1; i <= 4; i++ {
		if _, err := service.SignUp(tournament.ID, uint(i)); err != nil {
			t.Fatalf("SignUp %d failed: %v", i, err)
		}
	}

	if _, err := service.SignUp(tournament.ID, 5); err == nil {
		t.Error("expected error when the tournament is full")
	}
}

func TestWithdraw(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	createTestPlayer(t, db, 1, "Alpha", 1300)
	createTestPlayer(t, db, 2, "Beta", 1250)

	tournament, err := service.CreateTournament(models.CreateTournamentRequest{Name: "In And Out"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	if _, err := service.SignUp(tournament.ID, 1); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if err := service.Withdraw(tournament.ID, 2); err == nil {
		t.Error("expected error when withdrawing without a signup")
	}

	if err := service.Withdraw(tournament.ID, 1); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	current, err := service.GetTournamentByID(tournament.ID)
	if err != nil {
		t.Fatalf("GetTournamentByID failed: %v", err)
	}
	if current.NbEntrants != 0 {
		t.Errorf("nb_entrants = %d, want 0", current.NbEntrants)
	}

	// Signing up again after withdrawing is allowed
	if _, err := service.SignUp(tournament.ID, 1); err != nil {
		t.Errorf("re-signup after withdraw failed: %v", err)
	}
}

func TestSignUpClosedAfterStart(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)
	tournament := createTestBracket(t, db, 4)

	createTestPlayer(t, db, 10, "Latecomer", 1250)

	if _, err := service.SignUp(tournament.ID, 10); err == nil {
		t.Error("expected error when signing up after the bracket was generated")
	}
	if err := service.Withdraw(tournament.ID, 1); err == nil {
		t.Error("expected error when withdrawing after the bracket was generated")
	}
}

func TestUpdateTournamentStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	tournament, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Status Cup"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	// registration -> completed is not a manual transition
	completed := models.TournamentStatusCompleted
	if _, err := service.UpdateTournament(tournament.ID, models.UpdateTournamentRequest{Status: &completed}); err == nil {
		t.Error("expected error for registration -> completed")
	}

	name := "Renamed Cup"
	updated, err := service.UpdateTournament(tournament.ID, models.UpdateTournamentRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTournament failed: %v", err)
	}
	if updated.Name != "Renamed Cup" {
		t.Errorf("name = %q, want %q", updated.Name, "Renamed Cup")
	}

	// An in-progress tournament can be closed manually
	started := createTestBracket(t, db, 2)
	closed, err := service.UpdateTournament(started.ID, models.UpdateTournamentRequest{Status: &completed})
	if err != nil {
		t.Fatalf("UpdateTournament failed: %v", err)
	}
	if closed.Status != models.TournamentStatusCompleted {
		t.Errorf("status = %s, want %s", closed.Status, models.TournamentStatusCompleted)
	}
}

func TestGetEntrantsOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)
	tournament := createTestBracket(t, db, 4)

	entrants, err := service.GetEntrants(tournament.ID, 1, 20)
	if err != nil {
		t.Fatalf("GetEntrants failed: %v", err)
	}

	if entrants.Total != 4 {
		t.Fatalf("total = %d, want 4", entrants.Total)
	}
	for i, e := range entrants.Data {
		if e.Seed != i+1 {
			t.Errorf("entrant %d has seed %d, want %d", i, e.Seed, i+1)
		}
	}
}

func TestDeleteTournament(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	createTestPlayer(t, db, 1, "Alpha", 1300)
	tournament, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Short Lived"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	if err := service.DeleteTournament(tournament.ID); err != nil {
		t.Fatalf("DeleteTournament failed: %v", err)
	}
	if err := service.DeleteTournament(tournament.ID); err == nil {
		t.Error("expected error when deleting twice")
	}
	if _, err := service.GetTournamentByID(tournament.ID); err == nil {
		t.Error("expected not found after delete")
	}
	if _, err := service.GetTournamentBySlug(tournament.Slug); err == nil {
		t.Error("expected not found by slug after delete")
	}

	list, err := service.GetAllTournaments(1, 10, nil, nil)
	if err != nil {
		t.Fatalf("GetAllTournaments failed: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("total after delete = %d, want 0", list.Total)
	}
}

func TestDeletedBracketNotServed(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)
	bracketService := NewBracketService(db)
	tournament := createTestBracket(t, db, 4)

	if err := service.DeleteTournament(tournament.ID); err != nil {
		t.Fatalf("DeleteTournament failed: %v", err)
	}
	if _, err := bracketService.GetBracket(tournament.ID); err == nil {
		t.Error("expected not found for the bracket of a deleted tournament")
	}
}

func TestCreateTournamentAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	service := NewTournamentService(db)

	first, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Weekly Clash"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	if err := service.DeleteTournament(first.ID); err != nil {
		t.Fatalf("DeleteTournament failed: %v", err)
	}

	// The soft-deleted row still holds the slug, so the new one must not
	// collide with it
	second, err := service.CreateTournament(models.CreateTournamentRequest{Name: "Weekly Clash"}, 1)
	if err != nil {
		t.Fatalf("CreateTournament after delete failed: %v", err)
	}
	if second.Slug != "weekly-clash-1" {
		t.Errorf("slug = %q, want %q", second.Slug, "weekly-clash-1")
	}
}
