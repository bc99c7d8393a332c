package utils

import (
	"reflect"
	"testing"
)

func TestSeedOrder(t *testing.T) {
	tests := []struct {
		size int
		want []int
	}{
		{2, []int{1, 2}},
		{4, []int{1, 4, 2, 3}},
		{8, []int{1, 8, 4, 5, 2, 7, 3, 6}},
		{16, []int{1, 16, 8, 9, 4, 13, 5, 12, 2, 15, 7, 10, 3, 14, 6, 11}},
	}

	for _, tt := range tests {
		got := SeedOrder(tt.size)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SeedOrder(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestSeedOrderPairSums(t *testing.T) {
	// Every first-round pair must sum to size+1, so seed 1 always faces the
	// lowest seed and the top two seeds can only meet in the final.
	for _, size := range []int{2, 4, 8, 16, 32, 64} {
		order := SeedOrder(size)

		if len(order) != size {
			t.Fatalf("SeedOrder(%d) has length %d", size, len(order))
		}

		seen := make(map[int]bool)
		for i := 0; i < size; i += 2 {
			if sum := order[i] + order[i+1]; sum != size+1 {
				t.Errorf("size %d: pair (%d, %d) sums to %d, want %d", size, order[i], order[i+1], sum, size+1)
			}
			seen[order[i]] = true
			seen[order[i+1]] = true
		}

		for seed := 1; seed <= size; seed++ {
			if !seen[seed] {
				t.Errorf("size %d: seed %d missing from order", size, seed)
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{6, 8},
		{8, 8},
		{9, 16},
		{17, 32},
		{64, 64},
	}

	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestNumRounds(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{2, 1},
		{4, 2},
		{8, 3},
		{16, 4},
		{64, 6},
	}

	for _, tt := range tests {
		if got := NumRounds(tt.size); got != tt.want {
			t.Errorf("NumRounds(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestRoundName(t *testing.T) {
	tests := []struct {
		round       int
		totalRounds int
		want        string
	}{
		{3, 3, "Final"},
		{2, 3, "Semifinals"},
		{1, 3, "Quarterfinals"},
		{1, 4, "Round of 16"},
		{1, 5, "Round of 32"},
		{1, 1, "Final"},
	}

	for _, tt := range tests {
		if got := RoundName(tt.round, tt.totalRounds); got != tt.want {
			t.Errorf("RoundName(%d, %d) = %q, want %q", tt.round, tt.totalRounds, got, tt.want)
		}
	}
}
