package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEveningSummaryPoints(t *testing.T) {
	games := []CompletedGame{
		{
			GameType:  GameTypeWizard,
			PlayerIDs: []int{1, 2, 3},
			Positions: map[int]int{1: 1, 2: 2, 3: 3},
		},
	}
	// Player 4 was around that evening but sat this game out.
	result := ScoreEveningSummary(games, []int{1, 2, 3, 4})

	require.Len(t, result.Rows, 4)
	byID := make(map[int]SummaryRow, 4)
	for _, row := range result.Rows {
		byID[row.PlayerID] = row
	}

	assert.Equal(t, 3, byID[1].TotalPoints)
	assert.Equal(t, 2, byID[2].TotalPoints)
	assert.Equal(t, 1, byID[3].TotalPoints)
	assert.Equal(t, 0, byID[4].TotalPoints)

	require.Len(t, byID[4].PerGamePositions, 1)
	assert.Nil(t, byID[4].PerGamePositions[0])
	require.NotNil(t, byID[1].PerGamePositions[0])
	assert.Equal(t, 1, *byID[1].PerGamePositions[0])

	assert.Equal(t, 1, byID[1].OverallPosition)
	assert.Equal(t, 4, byID[4].OverallPosition)
}

func TestScoreEveningSummaryGoldenScoreTieBreak(t *testing.T) {
	// Everyone lands on 4 points across two games. Players 1 and 3 each
	// took a 1st and a 3rd, player 2 took two 2nds: a 1st place beats any
	// number of 2nds, and the identical records of 1 and 3 share the rank.
	games := []CompletedGame{
		{
			GameTypeDarts,
			[]int{1, 2, 3},
			map[int]int{1: 1, 2: 2, 3: 3},
		},
		{
			GameTypePool,
			[]int{1, 2, 3},
			map[int]int{3: 1, 2: 2, 1: 3},
		},
	}
	result := ScoreEveningSummary(games, []int{1, 2, 3})

	byID := make(map[int]SummaryRow, 3)
	for _, row := range result.Rows {
		byID[row.PlayerID] = row
	}
	require.Equal(t, 4, byID[1].TotalPoints)
	require.Equal(t, 4, byID[2].TotalPoints)
	require.Equal(t, 4, byID[3].TotalPoints)

	assert.Equal(t, 1, result.Rows[0].PlayerID)
	assert.Equal(t, 3, result.Rows[1].PlayerID)
	assert.Equal(t, 2, result.Rows[2].PlayerID)
	assert.Equal(t, 1, byID[1].OverallPosition)
	assert.Equal(t, 1, byID[3].OverallPosition)
	assert.Equal(t, 3, byID[2].OverallPosition)
}

func TestScoreEveningSummaryIdenticalRecordsShareRank(t *testing.T) {
	games := []CompletedGame{
		{
			GameTypeDarts,
			[]int{1, 2},
			map[int]int{1: 1, 2: 1},
		},
	}
	result := ScoreEveningSummary(games, []int{1, 2})

	assert.Equal(t, 1, result.Rows[0].OverallPosition)
	assert.Equal(t, 1, result.Rows[1].OverallPosition)
	// The final fallback on identical records is ascending player id.
	assert.Equal(t, 1, result.Rows[0].PlayerID)
	assert.Equal(t, 2, result.Rows[1].PlayerID)
}

func TestScoreEveningSummaryNoCompletedGames(t *testing.T) {
	result := ScoreEveningSummary(nil, []int{7, 3, 5})

	require.Len(t, result.Rows, 3)
	for _, row := range result.Rows {
		assert.Equal(t, 0, row.TotalPoints)
		assert.Equal(t, 1, row.OverallPosition)
		assert.Empty(t, row.PerGamePositions)
	}
}

func TestScoreEveningSummaryTiedSubGamePositions(t *testing.T) {
	// Two players tied for 1st in a 3-player game both collect 3 points.
	games := []CompletedGame{
		{
			GameTypePhase10,
			[]int{1, 2, 3},
			map[int]int{1: 1, 2: 1, 3: 3},
		},
	}
	result := ScoreEveningSummary(games, []int{1, 2, 3})

	byID := make(map[int]SummaryRow, 3)
	for _, row := range result.Rows {
		byID[row.PlayerID] = row
	}
	assert.Equal(t, 3, byID[1].TotalPoints)
	assert.Equal(t, 3, byID[2].TotalPoints)
	assert.Equal(t, 1, byID[3].TotalPoints)
}
