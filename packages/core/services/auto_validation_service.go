package services

import (
	"core/models"
	"log"
	"time"

	"gorm.io/gorm"
)

type AutoValidationService struct {
	db           *gorm.DB
	matchService *MatchService
}

func NewAutoValidationService(db *gorm.DB, matchService *MatchService) *AutoValidationService {
	return &AutoValidationService{
		db:           db,
		matchService: matchService,
	}
}

// expiredMatches returns reported matches whose reporting window (set per
// tournament) has elapsed without the opponent confirming or disputing.
func (s *AutoValidationService) expiredMatches() ([]models.Match, error) {
	var reported []models.Match
	result := s.db.Where("status = ?", models.MatchStatusReported).
		Preload("Tournament").
		Find(&reported)

	if result.Error != nil {
		return nil, result.Error
	}

	now := time.Now()
	var expired []models.Match
	for _, match := range reported {
		if match.ReportedAt == nil {
			continue
		}
		window := time.Duration(match.Tournament.ReportingWindowHours) * time.Hour
		if now.Sub(*match.ReportedAt) > window {
			expired = append(expired, match)
		}
	}

	return expired, nil
}

func (s *AutoValidationService) GetExpiredMatchesCount() (int, error) {
	expired, err := s.expiredMatches()
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}

// ValidateExpiredMatches confirms every reported match whose reporting window
// has run out. A silent opponent is treated as agreeing with the result.
func (s *AutoValidationService) ValidateExpiredMatches() error {
	expired, err := s.expiredMatches()
	if err != nil {
		log.Printf("Error finding expired matches: %v", err)
		return err
	}

	if len(expired) == 0 {
		log.Println("No expired matches found")
		return nil
	}

	log.Printf("Found %d expired matches to confirm", len(expired))

	for _, match := range expired {
		log.Printf("Auto-confirming match ID %d (reported at %v)", match.ID, match.ReportedAt)

		_, err := s.matchService.ConfirmMatch(match.ID, 0, true)
		if err != nil {
			log.Printf("Error auto-confirming match ID %d: %v", match.ID, err)
			// Continue with other matches even if one fails
			continue
		}

		log.Printf("Successfully auto-confirmed match ID %d", match.ID)
	}

	return nil
}
