package models

type Stats struct {
	TotalPlayers          int64   `json:"total_players"`
	TotalTournaments      int64   `json:"total_tournaments"`
	TournamentsInProgress int64   `json:"tournaments_in_progress"`
	TournamentsCompleted  int64   `json:"tournaments_completed"`
	TotalMatches          int64   `json:"total_matches"`
	MatchesConfirmed      int64   `json:"matches_confirmed"`
	MatchesLast7Days      int64   `json:"matches_last_7_days"`
	AverageRating         float64 `json:"average_rating"`
}
