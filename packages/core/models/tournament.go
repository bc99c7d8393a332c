package models

import (
	"time"

	"gorm.io/gorm"
)

// Tournament statuses
const (
	TournamentStatusRegistration = "registration"
	TournamentStatusInProgress   = "in_progress"
	TournamentStatusCompleted    = "completed"
)

type Tournament struct {
	ID                   uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string         `gorm:"size:255;not null" json:"name"`
	Slug                 string         `gorm:"size:255;unique;not null" json:"slug"`
	Game                 string         `gorm:"size:255" json:"game"`
	Description          string         `gorm:"type:text" json:"description"`
	Status               string         `gorm:"size:20;not null;default:registration" json:"status"` // registration, in_progress, completed
	MaxEntrants          int            `gorm:"default:16" json:"max_entrants"`
	BracketSize          int            `gorm:"default:0" json:"bracket_size"` // power of two, set when the bracket is generated
	CurrentRound         int            `gorm:"default:0" json:"current_round"`
	TotalRounds          int            `gorm:"default:0" json:"total_rounds"`
	ReportingWindowHours int            `gorm:"default:24" json:"reporting_window_hours"`
	WinnerID             *uint          `json:"winner_id"`
	CreatedByID          uint           `gorm:"not null" json:"created_by_id"`
	NbEntrants           int            `gorm:"default:0" json:"nb_entrants"`
	NbMatches            int            `gorm:"default:0" json:"nb_matches"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Winner   *Player            `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
	Entrants []TournamentPlayer `gorm:"foreignKey:TournamentID" json:"entrants,omitempty"`
	Matches  []Match            `gorm:"foreignKey:TournamentID" json:"matches,omitempty"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// TournamentPlayer is a player's signup entry in a tournament. Seed stays 0
// until the bracket is generated.
type TournamentPlayer struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"tournament_id"`
	PlayerID     uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"player_id"`
	Seed         int            `gorm:"default:0" json:"seed"`
	Wins         int            `gorm:"default:0" json:"wins"`
	Losses       int            `gorm:"default:0" json:"losses"`
	Eliminated   bool           `gorm:"default:false" json:"eliminated"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tournament Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Player     Player     `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
}

func (TournamentPlayer) TableName() string {
	return "tournament_players"
}

// DTOs

type CreateTournamentRequest struct {
	Name                 string `json:"name" binding:"required"`
	Game                 string `json:"game,omitempty"`
	Description          string `json:"description,omitempty"`
	MaxEntrants          int    `json:"max_entrants,omitempty" binding:"omitempty,min=4,max=64"`
	ReportingWindowHours int    `json:"reporting_window_hours,omitempty" binding:"omitempty,min=1,max=168"`
}

type UpdateTournamentRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=completed"`
}

// Responses

type TournamentListItem struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Game         string         `json:"game"`
	Description  string         `json:"description"`
	Status       string         `json:"status"`
	MaxEntrants  int            `json:"max_entrants"`
	BracketSize  int            `json:"bracket_size"`
	CurrentRound int            `json:"current_round"`
	TotalRounds  int            `json:"total_rounds"`
	WinnerID     *uint          `json:"winner_id"`
	NbEntrants   int            `json:"nb_entrants"`
	NbMatches    int            `json:"nb_matches"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TournamentListItem) TableName() string {
	return "tournaments"
}

type PaginatedTournamentsResponse struct {
	Data       []TournamentListItem `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}

type EntrantItem struct {
	ID         uint   `json:"id"`
	PlayerID   uint   `json:"player_id"`
	Seed       int    `json:"seed"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Eliminated bool   `json:"eliminated"`
	Player     Player `json:"player"`
}

type PaginatedEntrantsResponse struct {
	Data       []EntrantItem `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// BracketRound groups the matches of one round for the bracket view.
type BracketRound struct {
	Round   int     `json:"round"`
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

type BracketResponse struct {
	Tournament TournamentListItem `json:"tournament"`
	Rounds     []BracketRound     `json:"rounds"`
}
