package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignPositions(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []RankEntry
		expected map[int]int
	}{
		{
			name:     "empty input",
			sorted:   []RankEntry{},
			expected: map[int]int{},
		},
		{
			name: "distinct keys count up",
			sorted: []RankEntry{
				{PlayerID: 1, Key: "30"},
				{PlayerID: 2, Key: "20"},
				{PlayerID: 3, Key: "10"},
			},
			expected: map[int]int{1: 1, 2: 2, 3: 3},
		},
		{
			name: "tie shares rank and skips the next",
			sorted: []RankEntry{
				{PlayerID: 1, Key: "30"},
				{PlayerID: 2, Key: "20"},
				{PlayerID: 3, Key: "20"},
				{PlayerID: 4, Key: "10"},
			},
			expected: map[int]int{1: 1, 2: 2, 3: 2, 4: 4},
		},
		{
			name: "tie at the top",
			sorted: []RankEntry{
				{PlayerID: 1, Key: "30"},
				{PlayerID: 2, Key: "30"},
				{PlayerID: 3, Key: "10"},
			},
			expected: map[int]int{1: 1, 2: 1, 3: 3},
		},
		{
			name: "all tied",
			sorted: []RankEntry{
				{PlayerID: 1, Key: "0"},
				{PlayerID: 2, Key: "0"},
				{PlayerID: 3, Key: "0"},
			},
			expected: map[int]int{1: 1, 2: 1, 3: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AssignPositions(tt.sorted))
		})
	}
}

// Positions must be non-decreasing along the sorted sequence, and adjacent
// equal keys must yield equal positions.
func TestAssignPositionsMonotonic(t *testing.T) {
	sorted := []RankEntry{
		{PlayerID: 10, Key: "a"},
		{PlayerID: 11, Key: "a"},
		{PlayerID: 12, Key: "b"},
		{PlayerID: 13, Key: "b"},
		{PlayerID: 14, Key: "b"},
		{PlayerID: 15, Key: "c"},
	}
	positions := AssignPositions(sorted)

	previous := 0
	for i, entry := range sorted {
		assert.GreaterOrEqual(t, positions[entry.PlayerID], previous)
		if i > 0 && entry.Key == sorted[i-1].Key {
			assert.Equal(t, positions[sorted[i-1].PlayerID], positions[entry.PlayerID])
		}
		previous = positions[entry.PlayerID]
	}
}
