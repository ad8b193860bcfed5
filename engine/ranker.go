package engine

import "sort"

// RankEntry is one row of a pre-sorted standings sequence. Key is an
// opaque comparison key: two entries tie exactly when their keys are equal.
type RankEntry struct {
	PlayerID int
	Key      string
}

// AssignPositions walks a best-to-worst sorted sequence and hands out
// competition ranks: equal keys share a rank and the next distinct key
// jumps to index+1 (1, 2, 2, 4). The caller must sort with a total order
// before calling.
func AssignPositions(sorted []RankEntry) map[int]int {
	positions := make(map[int]int, len(sorted))
	position := 1
	previousKey := ""
	for i, entry := range sorted {
		if i == 0 || entry.Key != previousKey {
			position = i + 1
			previousKey = entry.Key
		}
		positions[entry.PlayerID] = position
	}
	return positions
}

// winnerIDs returns the players holding position 1, in ascending id order.
func winnerIDs(positions map[int]int) []int {
	var winners []int
	for id, position := range positions {
		if position == 1 {
			winners = append(winners, id)
		}
	}
	sort.Ints(winners)
	return winners
}
