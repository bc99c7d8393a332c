package models

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses
const (
	MatchStatusWaiting   = "waiting"   // one or both slots still empty
	MatchStatusScheduled = "scheduled" // both players known, no result yet
	MatchStatusReported  = "reported"  // result submitted, waiting for the opponent
	MatchStatusConfirmed = "confirmed" // result applied, winner advanced
	MatchStatusBye       = "bye"       // uncontested advancement
)

// Match is one node of the single-elimination tree. NextMatchID points to the
// match the winner advances into, NextMatchSlot (1 or 2) is the slot taken
// there. The slot is the parity of the match's index within its round.
type Match struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID  uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"tournament_id"`
	Round         int            `gorm:"not null" json:"round"`
	Slot          int            `gorm:"not null" json:"slot"` // index within the round, starting at 0
	Player1ID     *uint          `json:"player1_id"`
	Player2ID     *uint          `json:"player2_id"`
	Score1        int            `gorm:"default:0" json:"score1"`
	Score2        int            `gorm:"default:0" json:"score2"`
	WinnerID      *uint          `json:"winner_id"`
	Status        string         `gorm:"size:20;not null;default:waiting" json:"status"`
	NextMatchID   *uint          `json:"next_match_id"`
	NextMatchSlot int            `gorm:"default:0" json:"next_match_slot"` // 1 for Player1, 2 for Player2
	ReportedByID  *uint          `json:"reported_by_id"`
	Deadline      *time.Time     `json:"deadline"`
	ReportedAt    *time.Time     `json:"reported_at"`
	ConfirmedAt   *time.Time     `json:"confirmed_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tournament Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Player1    *Player    `gorm:"foreignKey:Player1ID;references:ID" json:"player1,omitempty"`
	Player2    *Player    `gorm:"foreignKey:Player2ID;references:ID" json:"player2,omitempty"`
	Winner     *Player    `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type ReportScoreRequest struct {
	Score1 int `json:"score1" binding:"min=0"`
	Score2 int `json:"score2" binding:"min=0"`
}
