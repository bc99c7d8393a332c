package services

import (
	"core/models"
	"core/utils"
	"errors"
	"time"

	"gorm.io/gorm"
)

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db: db,
	}
}

func (s *MatchService) GetMatchByID(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		First(&match, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, result.Error
	}

	return &match, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Where("status = ?", models.MatchStatusConfirmed).
		Order("confirmed_at DESC").
		Limit(limit).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetMatches(page, pageSize int, tournamentID, playerID *uint, status *string, round *int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	query := s.db.Model(&models.Match{})

	if tournamentID != nil {
		query = query.Where("tournament_id = ?", *tournamentID)
	}
	if playerID != nil {
		query = query.Where("player1_id = ? OR player2_id = ?", *playerID, *playerID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if round != nil {
		query = query.Where("round = ?", *round)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := query.
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Order("round ASC, slot ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ReportScore submits a result for a scheduled match. Draws are rejected:
// single elimination always needs a winner. The result stays in reported
// status until the opponent (or the auto-validation job) confirms it.
func (s *MatchService) ReportScore(matchID, reporterID uint, req models.ReportScoreRequest) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	if match.Status != models.MatchStatusScheduled {
		return nil, errors.New("match is not open for reporting")
	}

	if !isParticipant(&match, reporterID) {
		return nil, errors.New("only a participant can report a score")
	}

	if req.Score1 == req.Score2 {
		return nil, errors.New("scores must differ, draws are not possible in single elimination")
	}

	now := time.Now()
	match.Score1 = req.Score1
	match.Score2 = req.Score2
	if req.Score1 > req.Score2 {
		match.WinnerID = match.Player1ID
	} else {
		match.WinnerID = match.Player2ID
	}
	match.Status = models.MatchStatusReported
	match.ReportedByID = &reporterID
	match.ReportedAt = &now

	if err := s.db.Save(&match).Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

// ConfirmMatch applies a reported result. The confirmer must be the opponent
// of the reporter; admins and the auto-validation job (confirmerID 0 with
// force) bypass that check.
func (s *MatchService) ConfirmMatch(matchID, confirmerID uint, force bool) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	if match.Status != models.MatchStatusReported {
		return nil, errors.New("match has no reported result")
	}

	if !force {
		if !isParticipant(&match, confirmerID) {
			return nil, errors.New("only a participant can confirm a result")
		}
		if match.ReportedByID != nil && confirmerID == *match.ReportedByID {
			return nil, errors.New("the reporter cannot confirm their own result")
		}
	}

	return s.applyResult(match.ID)
}

// DisputeMatch rejects a reported result and puts the match back in scheduled
// status with a fresh reporting deadline.
func (s *MatchService) DisputeMatch(matchID, userID uint, force bool) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	if match.Status != models.MatchStatusReported {
		return nil, errors.New("match has no reported result")
	}

	if !force && !isParticipant(&match, userID) {
		return nil, errors.New("only a participant can dispute a result")
	}

	var tournament models.Tournament
	if err := s.db.First(&tournament, match.TournamentID).Error; err != nil {
		return nil, err
	}

	deadline := time.Now().Add(time.Duration(tournament.ReportingWindowHours) * time.Hour)

	match.Score1 = 0
	match.Score2 = 0
	match.WinnerID = nil
	match.Status = models.MatchStatusScheduled
	match.ReportedByID = nil
	match.ReportedAt = nil
	match.Deadline = &deadline

	if err := s.db.Save(&match).Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

// ResetMatch undoes a confirmed result: the advancement is rolled back and
// rating changes are reverted from the history rows. Refused once the next
// match has a result of its own.
func (s *MatchService) ResetMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	if match.Status != models.MatchStatusConfirmed {
		return nil, errors.New("only a confirmed match can be reset")
	}

	var tournament models.Tournament
	if err := s.db.First(&tournament, match.TournamentID).Error; err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	winnerID := *match.WinnerID
	loserID := otherParticipant(&match, winnerID)

	// Roll back the advancement. The next match must still be unplayed.
	if match.NextMatchID != nil {
		var parent models.Match
		if err := tx.First(&parent, *match.NextMatchID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if parent.Status != models.MatchStatusWaiting && parent.Status != models.MatchStatusScheduled {
			tx.Rollback()
			return nil, errors.New("cannot reset a match whose next match already has a result")
		}

		if match.NextMatchSlot == 1 {
			parent.Player1ID = nil
		} else {
			parent.Player2ID = nil
		}
		parent.Status = models.MatchStatusWaiting
		parent.Deadline = nil

		if err := tx.Save(&parent).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Revert entrant records
	if err := tx.Model(&models.TournamentPlayer{}).
		Where("tournament_id = ? AND player_id = ?", match.TournamentID, winnerID).
		Update("wins", gorm.Expr("wins - 1")).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.TournamentPlayer{}).
		Where("tournament_id = ? AND player_id = ?", match.TournamentID, loserID).
		Updates(map[string]interface{}{
			"losses":     gorm.Expr("losses - 1"),
			"eliminated": false,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Revert ratings from the history rows, then purge them
	var history []models.RatingHistory
	if err := tx.Where("match_id = ?", match.ID).Find(&history).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, h := range history {
		won := h.PlayerID == winnerID
		updates := map[string]interface{}{
			"rating":        h.RatingBefore,
			"total_matches": gorm.Expr("total_matches - 1"),
		}
		if won {
			updates["wins"] = gorm.Expr("wins - 1")
		} else {
			updates["losses"] = gorm.Expr("losses - 1")
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", h.PlayerID).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Unscoped().Where("match_id = ?", match.ID).Delete(&models.RatingHistory{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// A reset final reopens the tournament
	if match.NextMatchID == nil {
		if err := tx.Model(&models.Tournament{}).Where("id = ?", match.TournamentID).
			Updates(map[string]interface{}{
				"winner_id": nil,
				"status":    models.TournamentStatusInProgress,
			}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", winnerID).
			Update("tournaments_won", gorm.Expr("tournaments_won - 1")).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// The current round can never be ahead of an unplayed match
	if err := tx.Model(&models.Tournament{}).
		Where("id = ? AND current_round > ?", match.TournamentID, match.Round).
		Update("current_round", match.Round).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	deadline := time.Now().Add(time.Duration(tournament.ReportingWindowHours) * time.Hour)
	match.Score1 = 0
	match.Score2 = 0
	match.WinnerID = nil
	match.Status = models.MatchStatusScheduled
	match.ReportedByID = nil
	match.ReportedAt = nil
	match.ConfirmedAt = nil
	match.Deadline = &deadline

	if err := tx.Save(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

// applyResult confirms a reported match in one transaction: the winner
// advances into the parent slot, entrant records and ratings update, and a
// confirmed final completes the tournament.
func (s *MatchService) applyResult(matchID uint) (*models.Match, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var match models.Match
	if err := tx.First(&match, matchID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var tournament models.Tournament
	if err := tx.First(&tournament, match.TournamentID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	winnerID := *match.WinnerID
	loserID := otherParticipant(&match, winnerID)

	match.Status = models.MatchStatusConfirmed
	match.ConfirmedAt = &now
	if err := tx.Save(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Advance the winner into the parent slot
	if match.NextMatchID != nil {
		var parent models.Match
		if err := tx.First(&parent, *match.NextMatchID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		if match.NextMatchSlot == 1 {
			parent.Player1ID = &winnerID
		} else {
			parent.Player2ID = &winnerID
		}

		if parent.Player1ID != nil && parent.Player2ID != nil && parent.Status == models.MatchStatusWaiting {
			parent.Status = models.MatchStatusScheduled
			deadline := now.Add(time.Duration(tournament.ReportingWindowHours) * time.Hour)
			parent.Deadline = &deadline
		}

		if err := tx.Save(&parent).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// Entrant records: winner takes the win, loser is eliminated
	if err := updateEntrantRecord(tx, match.TournamentID, winnerID, true); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := updateEntrantRecord(tx, match.TournamentID, loserID, false); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Rating updates and history
	var player1, player2 models.Player
	if err := tx.First(&player1, *match.Player1ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.First(&player2, *match.Player2ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	change1, change2 := utils.CalculateRatingChange(player1.Rating, player2.Rating, winnerID, player1.ID)

	if err := s.applyPlayerResult(tx, &player1, &player2, change1, winnerID == player1.ID, match.ID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.applyPlayerResult(tx, &player2, &player1, change2, winnerID == player2.ID, match.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if match.NextMatchID == nil {
		// A confirmed final crowns the champion
		if err := tx.Model(&models.Tournament{}).Where("id = ?", tournament.ID).
			Updates(map[string]interface{}{
				"winner_id": winnerID,
				"status":    models.TournamentStatusCompleted,
			}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", winnerID).
			Update("tournaments_won", gorm.Expr("tournaments_won + 1")).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		// Advance the current round once every match of this round is done
		var remaining int64
		if err := tx.Model(&models.Match{}).
			Where("tournament_id = ? AND round = ? AND status NOT IN ?",
				match.TournamentID, match.Round,
				[]string{models.MatchStatusConfirmed, models.MatchStatusBye}).
			Count(&remaining).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if remaining == 0 {
			if err := tx.Model(&models.Tournament{}).
				Where("id = ? AND current_round = ?", match.TournamentID, match.Round).
				Update("current_round", match.Round+1).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetMatchByID(match.ID)
}

func (s *MatchService) applyPlayerResult(tx *gorm.DB, player, opponent *models.Player, change float64, won bool, matchID uint) error {
	history := models.RatingHistory{
		PlayerID:     player.ID,
		MatchID:      matchID,
		RatingBefore: player.Rating,
		RatingAfter:  player.Rating + change,
		RatingChange: change,
		OpponentID:   &opponent.ID,
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"rating":        player.Rating + change,
		"total_matches": gorm.Expr("total_matches + 1"),
	}
	if won {
		updates["wins"] = gorm.Expr("wins + 1")
	} else {
		updates["losses"] = gorm.Expr("losses + 1")
	}

	return tx.Model(&models.Player{}).Where("id = ?", player.ID).Updates(updates).Error
}

// updateEntrantRecord bumps an entrant's wins or losses, marking the loser of
// an elimination match as eliminated.
func updateEntrantRecord(tx *gorm.DB, tournamentID, playerID uint, won bool) error {
	updates := map[string]interface{}{}
	if won {
		updates["wins"] = gorm.Expr("wins + 1")
	} else {
		updates["losses"] = gorm.Expr("losses + 1")
		updates["eliminated"] = true
	}

	return tx.Model(&models.TournamentPlayer{}).
		Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		Updates(updates).Error
}

func isParticipant(match *models.Match, playerID uint) bool {
	if match.Player1ID != nil && *match.Player1ID == playerID {
		return true
	}
	if match.Player2ID != nil && *match.Player2ID == playerID {
		return true
	}
	return false
}

func otherParticipant(match *models.Match, playerID uint) uint {
	if match.Player1ID != nil && *match.Player1ID != playerID {
		return *match.Player1ID
	}
	if match.Player2ID != nil && *match.Player2ID != playerID {
		return *match.Player2ID
	}
	return 0
}
