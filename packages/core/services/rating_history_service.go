package services

import (
	"core/models"

	"gorm.io/gorm"
)

type RatingHistoryService struct {
	db *gorm.DB
}

func NewRatingHistoryService(db *gorm.DB) *RatingHistoryService {
	return &RatingHistoryService{
		db: db,
	}
}

func (s *RatingHistoryService) GetRecentRatingChanges(limit int) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Player").
		Preload("Match").
		Preload("Opponent").
		Find(&history)

	if result.Error != nil {
		return nil, result.Error
	}

	return history, nil
}
