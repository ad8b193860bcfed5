package services

import (
	"testing"

	"gamenight/engine"
	"gamenight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsForRescoresActiveGame(t *testing.T) {
	record := &models.GameRecord{
		GameType:  engine.GameTypePool,
		PlayerIDs: models.IntSlice{1, 2},
		Status:    models.StatusInProgress,
		Games: models.RawPayload(`[
			{"player1": 1, "player2": 2, "winnerId": 1},
			{"player1": 1, "player2": 2, "winnerId": 1},
			{"player1": 1, "player2": 2, "winnerId": 2}
		]`),
	}

	scorecard, err := standingsFor(engine.DefaultRegistry(), record)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 7, 2: 5}, scorecard.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 2: 2}, scorecard.Positions)
	assert.Equal(t, []int{1}, scorecard.WinnerIDs)
}

func TestStandingsForServesFrozenSnapshot(t *testing.T) {
	// The stored payload would score differently from the frozen snapshot;
	// a completed record must serve the snapshot verbatim.
	record := &models.GameRecord{
		GameType:  engine.GameTypePool,
		PlayerIDs: models.IntSlice{1, 2},
		Status:    models.StatusCompleted,
		Games: models.RawPayload(`[
			{"player1": 1, "player2": 2, "winnerId": 2},
			{"player1": 1, "player2": 2, "winnerId": 2}
		]`),
		FinalScores: models.IntMap{1: 9, 2: 3},
		Positions:   models.IntMap{1: 1, 2: 2},
		WinnerIDs:   models.IntSlice{1},
	}

	scorecard, err := standingsFor(engine.DefaultRegistry(), record)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 9, 2: 3}, scorecard.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 2: 2}, scorecard.Positions)
	assert.Equal(t, []int{1}, scorecard.WinnerIDs)
	assert.Empty(t, scorecard.Details)
}

func TestStandingsForFrozenSnapshotIsACopy(t *testing.T) {
	record := &models.GameRecord{
		GameType:    engine.GameTypeDarts,
		PlayerIDs:   models.IntSlice{1, 2},
		Status:      models.StatusCompleted,
		FinalScores: models.IntMap{1: 0, 2: 40},
		Positions:   models.IntMap{1: 1, 2: 2},
		WinnerIDs:   models.IntSlice{1},
	}

	scorecard, err := standingsFor(engine.DefaultRegistry(), record)
	require.NoError(t, err)

	scorecard.WinnerIDs[0] = 99
	assert.Equal(t, models.IntSlice{1}, record.WinnerIDs)
}

func TestStandingsForUnknownGameType(t *testing.T) {
	record := &models.GameRecord{
		GameType:  engine.GameType("chess"),
		PlayerIDs: models.IntSlice{1, 2},
		Status:    models.StatusInProgress,
	}

	_, err := standingsFor(engine.DefaultRegistry(), record)
	assert.Error(t, err)
}

func TestEditAndStandingsKeys(t *testing.T) {
	assert.Equal(t, "edit:7:block-3", editKey(7, "block-3"))
	assert.Equal(t, "standings:7:block-3", standingsKey(7, "block-3"))
}
