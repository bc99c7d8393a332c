package models

import (
	"time"

	"gorm.io/gorm"
)

// Player shares its ID with the auth user it belongs to.
type Player struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Gamertag          string         `gorm:"size:255;not null" json:"gamertag"`
	Rating            float64        `gorm:"default:1200" json:"rating"`
	TotalMatches      int            `gorm:"default:0" json:"total_matches"`
	Wins              int            `gorm:"default:0" json:"wins"`
	Losses            int            `gorm:"default:0" json:"losses"`
	TournamentsPlayed int            `gorm:"default:0" json:"tournaments_played"`
	TournamentsWon    int            `gorm:"default:0" json:"tournaments_won"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Entries       []TournamentPlayer `gorm:"foreignKey:PlayerID" json:"entries,omitempty"`
	RatingHistory []RatingHistory    `gorm:"foreignKey:PlayerID" json:"rating_history,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}
