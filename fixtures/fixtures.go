package fixtures

import (
	"fmt"
	"log"
	"math/rand"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	"core/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db                *gorm.DB
	tournamentService *services.TournamentService
	bracketService    *services.BracketService
	matchService      *services.MatchService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{
		db:                db,
		tournamentService: services.NewTournamentService(db),
		bracketService:    services.NewBracketService(db),
		matchService:      services.NewMatchService(db),
	}
}

// GenerateTestData creates demo users and three tournaments: one completed
// bracket, one in progress with a pending report, and one open for signups.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	users, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	if err := f.generateCompletedTournament(users); err != nil {
		return fmt.Errorf("failed to generate completed tournament: %w", err)
	}

	if err := f.generateInProgressTournament(users); err != nil {
		return fmt.Errorf("failed to generate in-progress tournament: %w", err)
	}

	if err := f.generateOpenTournament(users); err != nil {
		return fmt.Errorf("failed to generate open tournament: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	return nil
}

func (f *Fixtures) generateUsers() ([]authModels.User, error) {
	gamertags := []string{
		"NovaStrike", "PixelQueen", "IronWolf", "ZeroCool", "Blitz",
		"ShadowFox", "Rampage", "Luna", "Vortex", "CheckMate",
	}

	// Spread starting ratings so the completed bracket gets meaningful seeds
	baseRatings := []float64{1350, 1320, 1300, 1280, 1250, 1220, 1200, 1180, 1150, 1100}

	var users []authModels.User

	for i, gamertag := range gamertags {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return nil, err
		}

		userID := uint(i + 1) // #nosec G115 -- Force IDs 1, 2, 3, ...

		user := authModels.User{
			ID:         userID,
			Email:      fmt.Sprintf("%s@example.com", gamertag),
			Gamertag:   gamertag,
			Slug:       fmt.Sprintf("player-%d", userID),
			Password:   hashedPassword,
			Enabled:    true,
			LoginCount: rand.Intn(50) + 1, // #nosec G404
			Roles:      authModels.GetDefaultRoles(),
		}
		if i == 0 {
			user.AddRole(authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		player := models.Player{
			ID:       userID, // Same ID as user
			Gamertag: user.Gamertag,
			Rating:   baseRatings[i],
		}

		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}

		users = append(users, user)
		log.Printf("Created user: %s (ID: %d, rating: %.0f)", gamertag, userID, player.Rating)
	}

	return users, nil
}

func (f *Fixtures) generateCompletedTournament(users []authModels.User) error {
	tournament, err := f.tournamentService.CreateTournament(models.CreateTournamentRequest{
		Name:        "Spring Invitational",
		Game:        "Street Fighter 6",
		Description: "Eight player invitational, best of five sets.",
		MaxEntrants: 8,
	}, users[0].ID)
	if err != nil {
		return err
	}

	for i := 0; i < 8; i++ {
		if _, err := f.tournamentService.SignUp(tournament.ID, users[i].ID); err != nil {
			return err
		}
	}

	if _, err := f.bracketService.StartTournament(tournament.ID, users[0].ID, true); err != nil {
		return err
	}

	return f.playThroughBracket(tournament.ID)
}

func (f *Fixtures) generateInProgressTournament(users []authModels.User) error {
	tournament, err := f.tournamentService.CreateTournament(models.CreateTournamentRequest{
		Name:        "Weekly Clash #12",
		Game:        "Tekken 8",
		Description: "Weekly bracket, first round underway.",
		MaxEntrants: 8,
	}, users[0].ID)
	if err != nil {
		return err
	}

	// Six entrants so the bracket gets byes
	for i := 2; i < 8; i++ {
		if _, err := f.tournamentService.SignUp(tournament.ID, users[i].ID); err != nil {
			return err
		}
	}

	if _, err := f.bracketService.StartTournament(tournament.ID, users[0].ID, true); err != nil {
		return err
	}

	// Report one match without confirming it, to show the two-phase flow
	scheduled, err := f.scheduledMatches(tournament.ID)
	if err != nil {
		return err
	}
	if len(scheduled) > 0 {
		match := scheduled[0]
		_, err = f.matchService.ReportScore(match.ID, *match.Player1ID, models.ReportScoreRequest{
			Score1: 3,
			Score2: 2,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (f *Fixtures) generateOpenTournament(users []authModels.User) error {
	tournament, err := f.tournamentService.CreateTournament(models.CreateTournamentRequest{
		Name:        "Summer Skirmish",
		Game:        "Guilty Gear Strive",
		Description: "Open bracket, signups close Friday.",
		MaxEntrants: 16,
	}, users[1].ID)
	if err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		if _, err := f.tournamentService.SignUp(tournament.ID, users[i].ID); err != nil {
			return err
		}
	}

	log.Printf("Created open tournament: %s (ID: %d)", tournament.Name, tournament.ID)
	return nil
}

// playThroughBracket reports and confirms every match until the bracket has a
// champion. Each result is reported by player 1 and confirmed by player 2.
func (f *Fixtures) playThroughBracket(tournamentID uint) error {
	for {
		scheduled, err := f.scheduledMatches(tournamentID)
		if err != nil {
			return err
		}
		if len(scheduled) == 0 {
			return nil
		}

		for _, match := range scheduled {
			score1, score2 := 3, rand.Intn(3) // #nosec G404
			if rand.Float32() < 0.4 {         // #nosec G404
				score1, score2 = rand.Intn(3), 3 // #nosec G404
			}

			if _, err := f.matchService.ReportScore(match.ID, *match.Player1ID, models.ReportScoreRequest{
				Score1: score1,
				Score2: score2,
			}); err != nil {
				return err
			}

			if _, err := f.matchService.ConfirmMatch(match.ID, *match.Player2ID, false); err != nil {
				return err
			}
		}
	}
}

func (f *Fixtures) scheduledMatches(tournamentID uint) ([]models.Match, error) {
	status := models.MatchStatusScheduled
	resp, err := f.matchService.GetMatches(1, 100, &tournamentID, nil, &status, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ClearAllData removes all fixture data
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	// Delete in correct order due to foreign key constraints
	tables := []interface{}{
		&models.RatingHistory{},
		&models.Match{},
		&models.TournamentPlayer{},
		&models.Tournament{},
		&models.Player{},
		&authModels.RefreshToken{},
		&authModels.User{},
	}

	for _, table := range tables {
		if err := f.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	// Reset auto-increment sequences to start from 1
	sequences := []string{
		"ALTER SEQUENCE users_id_seq RESTART WITH 1",
		"ALTER SEQUENCE refresh_tokens_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournaments_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournament_players_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matches_id_seq RESTART WITH 1",
		"ALTER SEQUENCE rating_history_id_seq RESTART WITH 1",
	}

	for _, seq := range sequences {
		f.db.Exec(seq)
	}

	log.Println("All fixture data cleared!")
	return nil
}
