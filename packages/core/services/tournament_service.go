package services

import (
	"core/models"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type TournamentService struct {
	db *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		db: db,
	}
}

func (s *TournamentService) CreateTournament(req models.CreateTournamentRequest, createdByID uint) (*models.Tournament, error) {
	slug := s.generateUniqueSlug(req.Name)

	maxEntrants := req.MaxEntrants
	if maxEntrants == 0 {
		maxEntrants = 16
	}

	reportingWindow := req.ReportingWindowHours
	if reportingWindow == 0 {
		reportingWindow = 24
	}

	tournament := &models.Tournament{
		Name:                 req.Name,
		Slug:                 slug,
		Game:                 req.Game,
		Description:          req.Description,
		Status:               models.TournamentStatusRegistration,
		MaxEntrants:          maxEntrants,
		ReportingWindowHours: reportingWindow,
		CreatedByID:          createdByID,
	}

	if err := s.db.Create(tournament).Error; err != nil {
		return nil, err
	}

	return tournament, nil
}

func (s *TournamentService) GetTournamentByID(id uint) (*models.TournamentListItem, error) {
	var tournament models.TournamentListItem

	result := s.db.First(&tournament, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("tournament not found")
		}
		return nil, result.Error
	}

	return &tournament, nil
}

func (s *TournamentService) GetTournamentBySlug(slug string) (*models.TournamentListItem, error) {
	var tournament models.TournamentListItem

	result := s.db.Where("slug = ?", slug).First(&tournament)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("tournament not found")
		}
		return nil, result.Error
	}

	return &tournament, nil
}

func (s *TournamentService) GetAllTournaments(page, pageSize int, status *string, game *string) (*models.PaginatedTournamentsResponse, error) {
	var tournaments []models.TournamentListItem
	var total int64

	query := s.db.Model(&models.Tournament{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if game != nil {
		query = query.Where("game = ?", *game)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&tournaments).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedTournamentsResponse{
		Data:       tournaments,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TournamentService) UpdateTournament(id uint, req models.UpdateTournamentRequest) (*models.TournamentListItem, error) {
	tournament, err := s.GetTournamentByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		// The only manual transition is closing an in-progress tournament.
		// registration -> in_progress happens through bracket generation.
		if tournament.Status != models.TournamentStatusInProgress || *req.Status != models.TournamentStatusCompleted {
			return nil, fmt.Errorf("cannot change status from %s to %s", tournament.Status, *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Tournament{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetTournamentByID(id)
}

// SignUp registers a player in a tournament that is still open.
func (s *TournamentService) SignUp(tournamentID, playerID uint) (*models.TournamentPlayer, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("tournament not found")
		}
		return nil, err
	}

	if tournament.Status != models.TournamentStatusRegistration {
		return nil, errors.New("tournament is not open for registration")
	}

	if tournament.NbEntrants >= tournament.MaxEntrants {
		return nil, errors.New("tournament is full")
	}

	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, err
	}

	var existingEntry models.TournamentPlayer
	if err := s.db.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).First(&existingEntry).Error; err == nil {
		return nil, errors.New("already signed up for this tournament")
	}

	entry := &models.TournamentPlayer{
		TournamentID: tournamentID,
		PlayerID:     playerID,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}

	s.db.Model(&models.Tournament{}).Where("id = ?", tournamentID).
		Update("nb_entrants", gorm.Expr("nb_entrants + 1"))

	if err := s.db.Preload("Player").First(entry, entry.ID).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// Withdraw removes a player's signup. Only possible while registration is open.
func (s *TournamentService) Withdraw(tournamentID, playerID uint) error {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("tournament not found")
		}
		return err
	}

	if tournament.Status != models.TournamentStatusRegistration {
		return errors.New("tournament is not open for registration")
	}

	result := s.db.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).Delete(&models.TournamentPlayer{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("not signed up for this tournament")
	}

	s.db.Model(&models.Tournament{}).Where("id = ? AND nb_entrants > 0", tournamentID).
		Update("nb_entrants", gorm.Expr("nb_entrants - 1"))

	return nil
}

func (s *TournamentService) GetEntrants(tournamentID uint, page, pageSize int) (*models.PaginatedEntrantsResponse, error) {
	var entries []models.TournamentPlayer
	var total int64

	query := s.db.Model(&models.TournamentPlayer{}).Where("tournament_id = ?", tournamentID)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	// Unseeded entrants (seed 0) sort after seeded ones, in signup order.
	if err := s.db.Where("tournament_id = ?", tournamentID).
		Preload("Player").
		Order("CASE WHEN seed = 0 THEN 1 ELSE 0 END, seed ASC, created_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	items := make([]models.EntrantItem, len(entries))
	for i, e := range entries {
		items[i] = models.EntrantItem{
			ID:         e.ID,
			PlayerID:   e.PlayerID,
			Seed:       e.Seed,
			Wins:       e.Wins,
			Losses:     e.Losses,
			Eliminated: e.Eliminated,
			Player:     e.Player,
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedEntrantsResponse{
		Data:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TournamentService) DeleteTournament(id uint) error {
	result := s.db.Delete(&models.Tournament{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("tournament not found")
	}

	return nil
}

func (s *TournamentService) generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")

	return slug
}

func (s *TournamentService) generateUniqueSlug(name string) string {
	baseSlug := s.generateSlug(name)
	slug := baseSlug
	counter := 1

	// Unscoped: the slug column is unique across soft-deleted rows too
	for {
		var existing models.Tournament
		result := s.db.Unscoped().Where("slug = ?", slug).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			break
		}

		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}

	return slug
}
