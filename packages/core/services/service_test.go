package services

import (
	"testing"

	"core/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Tournament{},
		&models.TournamentPlayer{},
		&models.Match{},
		&models.RatingHistory{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestPlayer(t *testing.T, db *gorm.DB, id uint, gamertag string, rating float64) *models.Player {
	t.Helper()

	player := &models.Player{
		ID:       id,
		Gamertag: gamertag,
		Rating:   rating,
	}
	if err := db.Create(player).Error; err != nil {
		t.Fatalf("failed to create player %s: %v", gamertag, err)
	}
	return player
}

// createTestBracket creates n players with descending ratings (player 1 is the
// top seed), signs them all up and starts the tournament. Player 1 is the
// creator.
func createTestBracket(t *testing.T, db *gorm.DB, n int) *models.Tournament {
	t.Helper()

	tournamentService := NewTournamentService(db)
	bracketService := NewBracketService(db)

	for i := 1; i <= n; i++ {
		createTestPlayer(t, db, uint(i), "player", 1500-float64(i)*10)
	}

	tournament, err := tournamentService.CreateTournament(models.CreateTournamentRequest{
		Name:        "Test Cup",
		MaxEntrants: 64,
	}, 1)
	if err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}

	for i := 1; i <= n; i++ {
		if _, err := tournamentService.SignUp(tournament.ID, uint(i)); err != nil {
			t.Fatalf("failed to sign up player %d: %v", i, err)
		}
	}

	started, err := bracketService.StartTournament(tournament.ID, 1, false)
	if err != nil {
		t.Fatalf("failed to start tournament: %v", err)
	}
	return started
}

func matchesForRound(t *testing.T, db *gorm.DB, tournamentID uint, round int) []models.Match {
	t.Helper()

	var matches []models.Match
	if err := db.Where("tournament_id = ? AND round = ?", tournamentID, round).
		Order("slot ASC").
		Find(&matches).Error; err != nil {
		t.Fatalf("failed to load round %d matches: %v", round, err)
	}
	return matches
}
