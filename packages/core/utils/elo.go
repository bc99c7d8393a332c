package utils

import "math"

// CalculateRatingChange calculates rating changes for both players of a match
// using the standard Elo formula. Returns (player1Change, player2Change).
func CalculateRatingChange(player1Rating, player2Rating float64, winnerID, player1ID uint) (float64, float64) {
	const K = 32.0 // Elo K-factor

	// Expected scores
	expectedScore1 := 1.0 / (1.0 + math.Pow(10, (player2Rating-player1Rating)/400))
	expectedScore2 := 1.0 - expectedScore1

	// Actual scores
	var actualScore1, actualScore2 float64
	if winnerID == player1ID {
		actualScore1 = 1.0
		actualScore2 = 0.0
	} else {
		actualScore1 = 0.0
		actualScore2 = 1.0
	}

	change1 := K * (actualScore1 - expectedScore1)
	change2 := K * (actualScore2 - expectedScore2)

	return math.Round(change1), math.Round(change2)
}
