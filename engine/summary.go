package engine

import (
	"fmt"
	"sort"
	"strings"
)

// CompletedGame is the slice of a finished game record the evening
// summary needs: who played and where they finished.
type CompletedGame struct {
	GameType  GameType    `json:"gameType"`
	PlayerIDs []int       `json:"playerIds"`
	Positions map[int]int `json:"positions"`
}

// SummaryRow is one row of the cross-game evening ranking. The per-game
// column is nil for games the player did not take part in.
type SummaryRow struct {
	PlayerID         int    `json:"playerId"`
	TotalPoints      int    `json:"totalPoints"`
	PerGamePositions []*int `json:"perGamePositions"`
	OverallPosition  int    `json:"overallPosition"`
}

// SummaryResult holds the ranked evening summary, best first.
type SummaryResult struct {
	Rows []SummaryRow `json:"rows"`
}

// ScoreEveningSummary aggregates the final positions of all completed
// games of an evening into one meta-ranking. Each game awards
// k-position+1 points to its k participants. Ties on total points break
// golden-score style: whoever finished 1st more often across games wins,
// then 2nd places, and so on; genuinely identical records fall back to
// ascending player id. With no completed game yet everyone shares
// position 1.
func ScoreEveningSummary(games []CompletedGame, allPlayerIDs []int) SummaryResult {
	totals := make(map[int]int, len(allPlayerIDs))
	perGame := make(map[int][]*int, len(allPlayerIDs))
	finishCounts := make(map[int]map[int]int, len(allPlayerIDs))
	maxPosition := 0

	for _, game := range games {
		participants := len(game.PlayerIDs)
		for _, id := range allPlayerIDs {
			position, played := game.Positions[id]
			if !played {
				perGame[id] = append(perGame[id], nil)
				continue
			}
			awarded := participants - position + 1
			if awarded < 0 {
				awarded = 0
			}
			totals[id] += awarded
			p := position
			perGame[id] = append(perGame[id], &p)
			if finishCounts[id] == nil {
				finishCounts[id] = make(map[int]int)
			}
			finishCounts[id][position]++
			if position > maxPosition {
				maxPosition = position
			}
		}
	}

	// Lexicographic tie-break vector: count of 1st places, 2nd places, ...
	countsOf := func(id int) []int {
		counts := make([]int, maxPosition)
		for position, n := range finishCounts[id] {
			counts[position-1] = n
		}
		return counts
	}

	ids := append([]int(nil), allPlayerIDs...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		countsA, countsB := countsOf(a), countsOf(b)
		for k := range countsA {
			if countsA[k] != countsB[k] {
				return countsA[k] > countsB[k]
			}
		}
		return a < b
	})

	entries := make([]RankEntry, len(ids))
	for i, id := range ids {
		counts := countsOf(id)
		parts := make([]string, 0, len(counts)+1)
		parts = append(parts, fmt.Sprintf("%d", totals[id]))
		for _, n := range counts {
			parts = append(parts, fmt.Sprintf("%d", n))
		}
		entries[i] = RankEntry{PlayerID: id, Key: strings.Join(parts, "|")}
	}
	positions := AssignPositions(entries)

	rows := make([]SummaryRow, len(ids))
	for i, id := range ids {
		columns := perGame[id]
		if columns == nil {
			columns = []*int{}
		}
		rows[i] = SummaryRow{
			PlayerID:         id,
			TotalPoints:      totals[id],
			PerGamePositions: columns,
			OverallPosition:  positions[id],
		}
	}

	return SummaryResult{Rows: rows}
}
