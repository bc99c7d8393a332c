package utils

import "fmt"

// SeedOrder returns the placement order of seeds for a bracket of the given
// size (must be a power of two). Index i of the result is the seed occupying
// bracket position i; consecutive pairs form the first-round matches, so every
// pair sums to size+1 (1 vs size, 2 vs size-1, ...), and the top two seeds can
// only meet in the final.
//
// The order is built by the usual doubling recursion: the order for size 2n is
// obtained from the order for size n by replacing each seed s with the pair
// (s, 2n+1-s).
func SeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		grown := make([]int, 0, len(order)*2)
		complement := len(order)*2 + 1
		for _, s := range order {
			grown = append(grown, s, complement-s)
		}
		order = grown
	}
	return order
}

// NextPowerOfTwo returns the smallest power of two >= n (and at least 2).
func NextPowerOfTwo(n int) int {
	size := 2
	for size < n {
		size <<= 1
	}
	return size
}

// NumRounds returns the number of rounds in a bracket of the given size.
func NumRounds(size int) int {
	rounds := 0
	for (1 << rounds) < size {
		rounds++
	}
	return rounds
}

// RoundName returns the display name for a round ("Final", "Semifinals", ...).
func RoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round of %d", 1<<(totalRounds-round+1))
	}
}
