package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolMatch(p1, p2, winner int) PoolMatch {
	return PoolMatch{Player1: p1, Player2: p2, WinnerID: winner}
}

func TestScorePoolPoints(t *testing.T) {
	matches := []PoolMatch{
		poolMatch(1, 2, 1),
		poolMatch(1, 3, 1),
		poolMatch(2, 3, 3),
	}
	result := ScorePool(matches, []int{1, 2, 3})

	// Winner takes 3, loser keeps a participation point.
	assert.Equal(t, map[int]int{1: 6, 2: 2, 3: 4}, result.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 3: 2, 2: 3}, result.Positions)
	assert.Equal(t, []int{1}, result.WinnerIDs)

	require.Len(t, result.Standings, 3)
	top := result.Standings[0]
	assert.Equal(t, 1, top.PlayerID)
	assert.Equal(t, 2, top.Wins)
	assert.Equal(t, 0, top.Losses)
	assert.Equal(t, 1.0, top.WinPct)
}

func TestScorePoolHeadToHeadOrdersButDoesNotSplitRank(t *testing.T) {
	// Players 1 and 2 both finish one win, one loss: identical points and
	// win percentage. 1 beat 2 directly, so 1 sorts first, but both still
	// display the same position.
	matches := []PoolMatch{
		poolMatch(1, 2, 1),
		poolMatch(3, 1, 3),
		poolMatch(2, 4, 2),
	}
	result := ScorePool(matches, []int{1, 2, 3, 4})

	assert.Equal(t, 4, result.FinalScores[1])
	assert.Equal(t, 4, result.FinalScores[2])
	require.Len(t, result.Standings, 4)
	assert.Equal(t, 1, result.Standings[0].PlayerID)
	assert.Equal(t, 2, result.Standings[1].PlayerID)
	assert.Equal(t, result.Positions[1], result.Positions[2])
}

func TestScorePoolWinPctBreaksPointTies(t *testing.T) {
	// One win and one loss (4 points, 50%) ranks above four straight
	// losses (also 4 points, 0%).
	matches := []PoolMatch{
		poolMatch(1, 3, 1),
		poolMatch(1, 3, 3),
		poolMatch(2, 3, 3),
		poolMatch(2, 3, 3),
		poolMatch(2, 3, 3),
		poolMatch(2, 3, 3),
	}
	result := ScorePool(matches, []int{1, 2, 3})

	assert.Equal(t, 4, result.FinalScores[1])
	assert.Equal(t, 4, result.FinalScores[2])
	assert.Less(t, result.Positions[1], result.Positions[2])
}

func TestScorePoolIgnoresMalformedMatches(t *testing.T) {
	matches := []PoolMatch{
		poolMatch(1, 2, 1),
		poolMatch(1, 99, 1),  // unknown opponent
		poolMatch(1, 2, 42),  // winner not part of the pairing
	}
	result := ScorePool(matches, []int{1, 2})

	assert.Equal(t, map[int]int{1: 3, 2: 1}, result.FinalScores)
}

func TestScorePoolEmpty(t *testing.T) {
	result := ScorePool(nil, []int{1, 2, 3})

	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0}, result.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, result.Positions)
	for _, standing := range result.Standings {
		assert.Equal(t, 0.0, standing.WinPct)
	}
}
