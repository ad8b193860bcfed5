package engine

import (
	"fmt"
	"math"
	"sort"
)

// PoolMatch is one recorded match between two players. The loser is the
// non-winner of the pair.
type PoolMatch struct {
	Player1       int  `json:"player1"`
	Player2       int  `json:"player2"`
	WinnerID      int  `json:"winnerId"`
	BallsLeft     *int `json:"ballsLeft,omitempty"`
	EightBallFoul bool `json:"eightBallFoul,omitempty"`
}

// A win pays 3 points; losing still earns a participation point.
const (
	poolWinPoints  = 3
	poolLossPoints = 1
)

// PoolStanding is one row of the round-robin table.
type PoolStanding struct {
	PlayerID int     `json:"playerId"`
	Points   int     `json:"points"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinPct   float64 `json:"winPct"`
	Position int     `json:"position"`
}

// PoolResult extends the common result with the ordered standings table.
type PoolResult struct {
	Result
	Standings []PoolStanding `json:"standings"`
}

// ScorePool aggregates match results into standings. The sort cascade is
// total points, then win percentage, then the head-to-head differential
// between the two compared players, then ascending player id. Only points
// and rounded win percentage form the rank key, so entries separated by
// head-to-head alone still share a displayed position.
func ScorePool(matches []PoolMatch, playerIDs []int) PoolResult {
	known := make(map[int]bool, len(playerIDs))
	for _, id := range playerIDs {
		known[id] = true
	}

	points := make(map[int]int, len(playerIDs))
	wins := make(map[int]int, len(playerIDs))
	losses := make(map[int]int, len(playerIDs))
	// headToHead[a][b] counts a's wins over b.
	headToHead := make(map[int]map[int]int, len(playerIDs))
	recordWin := func(winner, loser int) {
		if headToHead[winner] == nil {
			headToHead[winner] = make(map[int]int)
		}
		headToHead[winner][loser]++
	}

	for _, match := range matches {
		if !known[match.Player1] || !known[match.Player2] {
			continue
		}
		var loser int
		switch match.WinnerID {
		case match.Player1:
			loser = match.Player2
		case match.Player2:
			loser = match.Player1
		default:
			continue
		}
		points[match.WinnerID] += poolWinPoints
		points[loser] += poolLossPoints
		wins[match.WinnerID]++
		losses[loser]++
		recordWin(match.WinnerID, loser)
	}

	winPct := func(id int) float64 {
		played := wins[id] + losses[id]
		if played == 0 {
			return 0
		}
		return float64(wins[id]) / float64(played)
	}

	ids := append([]int(nil), playerIDs...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if points[a] != points[b] {
			return points[a] > points[b]
		}
		if winPct(a) != winPct(b) {
			return winPct(a) > winPct(b)
		}
		diff := headToHead[a][b] - headToHead[b][a]
		if diff != 0 {
			return diff > 0
		}
		return a < b
	})

	entries := make([]RankEntry, len(ids))
	for i, id := range ids {
		rounded := int(math.Round(winPct(id) * 100))
		entries[i] = RankEntry{PlayerID: id, Key: fmt.Sprintf("%d|%d", points[id], rounded)}
	}
	positions := AssignPositions(entries)

	finalScores := make(map[int]int, len(ids))
	standings := make([]PoolStanding, len(ids))
	for i, id := range ids {
		finalScores[id] = points[id]
		standings[i] = PoolStanding{
			PlayerID: id,
			Points:   points[id],
			Wins:     wins[id],
			Losses:   losses[id],
			WinPct:   winPct(id),
			Position: positions[id],
		}
	}

	return PoolResult{
		Result: Result{
			FinalScores: finalScores,
			Positions:   positions,
			WinnerIDs:   winnerIDs(positions),
		},
		Standings: standings,
	}
}
