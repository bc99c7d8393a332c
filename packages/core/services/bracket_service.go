package services

import (
	"core/models"
	"core/utils"
	"errors"
	"time"

	"gorm.io/gorm"
)

type BracketService struct {
	db *gorm.DB
}

func NewBracketService(db *gorm.DB) *BracketService {
	return &BracketService{
		db: db,
	}
}

// StartTournament seeds the entrants and generates the full single-elimination
// tree. Seeds are assigned by player rating (signup order breaks ties), the
// bracket size is the next power of two, and placement follows the standard
// 1-vs-N order so round-1 pairs always sum to size+1. Byes go to the top
// seeds and are advanced immediately.
//
// Only the tournament creator or an admin may start a tournament.
func (s *BracketService) StartTournament(tournamentID, requesterID uint, isAdmin bool) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("tournament not found")
		}
		return nil, err
	}

	if tournament.Status != models.TournamentStatusRegistration {
		return nil, errors.New("tournament has already started")
	}

	if tournament.CreatedByID != requesterID && !isAdmin {
		return nil, errors.New("only the tournament creator can start it")
	}

	var entries []models.TournamentPlayer
	if err := s.db.
		Joins("JOIN players ON players.id = tournament_players.player_id").
		Where("tournament_players.tournament_id = ?", tournamentID).
		Order("players.rating DESC, tournament_players.created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	n := len(entries)
	if n < 2 {
		return nil, errors.New("at least 2 entrants are required to start a tournament")
	}

	size := utils.NextPowerOfTwo(n)
	totalRounds := utils.NumRounds(size)

	now := time.Now()
	deadline := now.Add(time.Duration(tournament.ReportingWindowHours) * time.Hour)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Assign seeds in rating order
	for i := range entries {
		entries[i].Seed = i + 1
		if err := tx.Model(&models.TournamentPlayer{}).
			Where("id = ?", entries[i].ID).
			Update("seed", entries[i].Seed).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Place seeds into bracket positions; empty positions are byes.
	// Byes never face each other: size < 2n, so every round-1 pair has at
	// least one player.
	order := utils.SeedOrder(size)
	positions := make([]*uint, size)
	for i, seed := range order {
		if seed <= n {
			playerID := entries[seed-1].PlayerID
			positions[i] = &playerID
		}
	}

	// Create the matches round by round in reverse (final first) so every
	// match can point at the one its winner advances into.
	var nextRoundMatches []models.Match

	for r := totalRounds; r >= 1; r-- {
		numMatches := 1 << (totalRounds - r)
		currentRound := make([]models.Match, 0, numMatches)

		for i := 0; i < numMatches; i++ {
			m := models.Match{
				TournamentID: tournament.ID,
				Round:        r,
				Slot:         i,
				Status:       models.MatchStatusWaiting,
			}

			if len(nextRoundMatches) > 0 {
				parent := nextRoundMatches[i/2]
				m.NextMatchID = &parent.ID
				m.NextMatchSlot = (i % 2) + 1
			}

			if r == 1 {
				m.Player1ID = positions[i*2]
				m.Player2ID = positions[i*2+1]

				if m.Player1ID != nil && m.Player2ID != nil {
					m.Status = models.MatchStatusScheduled
					d := deadline
					m.Deadline = &d
				} else {
					winner := m.Player1ID
					if winner == nil {
						winner = m.Player2ID
					}
					m.WinnerID = winner
					m.Status = models.MatchStatusBye
					c := now
					m.ConfirmedAt = &c
				}
			}

			if err := tx.Create(&m).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
			currentRound = append(currentRound, m)
		}
		nextRoundMatches = currentRound
	}

	// Advance the bye winners into round 2
	for _, m := range nextRoundMatches {
		if m.Status != models.MatchStatusBye || m.NextMatchID == nil {
			continue
		}

		var parent models.Match
		if err := tx.First(&parent, *m.NextMatchID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if m.NextMatchSlot == 1 {
			parent.Player1ID = m.WinnerID
		} else {
			parent.Player2ID = m.WinnerID
		}

		if parent.Player1ID != nil && parent.Player2ID != nil {
			parent.Status = models.MatchStatusScheduled
			d := deadline
			parent.Deadline = &d
		}

		if err := tx.Save(&parent).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Every entrant has now played a tournament
	playerIDs := make([]uint, n)
	for i, e := range entries {
		playerIDs[i] = e.PlayerID
	}
	if err := tx.Model(&models.Player{}).Where("id IN ?", playerIDs).
		Update("tournaments_played", gorm.Expr("tournaments_played + 1")).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        models.TournamentStatusInProgress,
		"bracket_size":  size,
		"total_rounds":  totalRounds,
		"current_round": 1,
		"nb_matches":    size - 1,
	}
	if err := tx.Model(&models.Tournament{}).Where("id = ?", tournament.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&tournament, tournament.ID).Error; err != nil {
		return nil, err
	}

	return &tournament, nil
}

// GetBracket returns the full bracket as ordered rounds of matches.
func (s *BracketService) GetBracket(tournamentID uint) (*models.BracketResponse, error) {
	var tournament models.TournamentListItem
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("tournament not found")
		}
		return nil, err
	}

	if tournament.TotalRounds == 0 {
		return nil, errors.New("bracket has not been generated yet")
	}

	var matches []models.Match
	if err := s.db.Where("tournament_id = ?", tournamentID).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Order("round ASC, slot ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}

	rounds := make([]models.BracketRound, tournament.TotalRounds)
	for r := 1; r <= tournament.TotalRounds; r++ {
		rounds[r-1] = models.BracketRound{
			Round:   r,
			Name:    utils.RoundName(r, tournament.TotalRounds),
			Matches: []models.Match{},
		}
	}

	for _, m := range matches {
		if m.Round >= 1 && m.Round <= tournament.TotalRounds {
			rounds[m.Round-1].Matches = append(rounds[m.Round-1].Matches, m)
		}
	}

	return &models.BracketResponse{
		Tournament: tournament,
		Rounds:     rounds,
	}, nil
}
