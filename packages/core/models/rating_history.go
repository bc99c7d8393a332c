package models

import (
	"time"

	"gorm.io/gorm"
)

// RatingHistory records one rating change, written when a match result is
// confirmed. Rows are deleted again if the match is reset by an admin.
type RatingHistory struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID     uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"player_id"`
	MatchID      uint           `gorm:"not null;constraint:OnDelete:CASCADE" json:"match_id"`
	RatingBefore float64        `gorm:"not null" json:"rating_before"`
	RatingAfter  float64        `gorm:"not null" json:"rating_after"`
	RatingChange float64        `gorm:"not null" json:"rating_change"`
	OpponentID   *uint          `json:"opponent_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player   Player  `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Match    Match   `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Opponent *Player `gorm:"foreignKey:OpponentID;references:ID" json:"opponent,omitempty"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
