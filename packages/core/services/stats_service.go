package services

import (
	"core/models"
	"time"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	stats := &models.Stats{}

	if err := s.db.Model(&models.Player{}).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tournament{}).Count(&stats.TotalTournaments).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tournament{}).
		Where("status = ?", models.TournamentStatusInProgress).
		Count(&stats.TournamentsInProgress).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Tournament{}).
		Where("status = ?", models.TournamentStatusCompleted).
		Count(&stats.TournamentsCompleted).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).Count(&stats.TotalMatches).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("status = ?", models.MatchStatusConfirmed).
		Count(&stats.MatchesConfirmed).Error; err != nil {
		return nil, err
	}

	last7DaysStart := time.Now().AddDate(0, 0, -7)
	if err := s.db.Model(&models.Match{}).
		Where("created_at >= ?", last7DaysStart).
		Count(&stats.MatchesLast7Days).Error; err != nil {
		return nil, err
	}

	if stats.TotalPlayers > 0 {
		row := s.db.Model(&models.Player{}).Select("AVG(rating)").Row()
		if err := row.Scan(&stats.AverageRating); err != nil {
			return nil, err
		}
	}

	return stats, nil
}
