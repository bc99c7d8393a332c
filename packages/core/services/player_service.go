package services

import (
	"core/models"
	"errors"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) CreatePlayer(userID uint, gamertag string) (*models.Player, error) {
	player := &models.Player{
		ID:       userID,
		Gamertag: gamertag,
		Rating:   1200,
	}

	result := s.db.Create(player)
	if result.Error != nil {
		return nil, result.Error
	}

	return player, nil
}

func (s *PlayerService) GetAllPlayers(page, pageSize int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := s.db.
		Order("rating DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PlayerService) GetTopPlayersByRating(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Order("rating DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetRatingHistoryByPlayerID(playerID uint) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	result := s.db.Where("player_id = ?", playerID).
		Order("id ASC").
		Preload("Match").
		Preload("Opponent").
		Find(&history)

	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}

func (s *PlayerService) GetPlayerMatches(playerID uint, page, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	query := s.db.Model(&models.Match{}).
		Where("player1_id = ? OR player2_id = ?", playerID, playerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := s.db.
		Where("player1_id = ? OR player2_id = ?", playerID, playerID).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Order("created_at DESC").
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
