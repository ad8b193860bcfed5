package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardRoundScore(t *testing.T) {
	tests := []struct {
		name     string
		bid      int
		won      int
		expected int
	}{
		{"exact bid of three", 3, 3, 50},
		{"zero bid hit", 0, 0, 20},
		{"off by one", 0, 1, -10},
		{"off by two", 2, 4, -20},
		{"overbid by three", 5, 2, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WizardRoundScore(tt.bid, tt.won))
		})
	}
}

func TestWizardTotalRounds(t *testing.T) {
	assert.Equal(t, 0, WizardTotalRounds(2))
	assert.Equal(t, 20, WizardTotalRounds(3))
	assert.Equal(t, 15, WizardTotalRounds(4))
	assert.Equal(t, 12, WizardTotalRounds(5))
	assert.Equal(t, 10, WizardTotalRounds(6))
	assert.Equal(t, 0, WizardTotalRounds(7))
}

func wizardEntry(bid, won int) WizardEntry {
	return WizardEntry{Bid: intPtr(bid), Won: intPtr(won)}
}

func TestScoreWizardFourPlayerRound(t *testing.T) {
	rounds := []WizardRound{
		{Entries: map[int]WizardEntry{
			1: wizardEntry(1, 1),
			2: wizardEntry(0, 0),
			3: wizardEntry(2, 1),
			4: wizardEntry(1, 0),
		}},
	}
	result := ScoreWizard(rounds, []int{1, 2, 3, 4})

	assert.Equal(t, map[int]int{1: 30, 2: 20, 3: -10, 4: -10}, result.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 3, 4: 3}, result.Positions)
	assert.Equal(t, []int{1}, result.WinnerIDs)
	assert.Equal(t, 1, result.CurrentRound)
	assert.Equal(t, 1, result.CompletedRounds)
	assert.Equal(t, 15, result.TotalRounds)
}

func TestScoreWizardWerewolfAdjustment(t *testing.T) {
	// A +1 adjustment on a bid of 2 with 3 tricks won turns a miss into an
	// exact hit worth 50.
	rounds := []WizardRound{
		{
			Entries: map[int]WizardEntry{
				1: wizardEntry(2, 3),
				2: wizardEntry(1, 0),
				3: wizardEntry(0, 0),
			},
			Meta: &WizardMeta{WerewolfPlayerID: 1, WerewolfAdjustment: 1},
		},
	}
	result := ScoreWizard(rounds, []int{1, 2, 3})

	assert.Equal(t, 50, result.FinalScores[1])
	assert.Equal(t, -10, result.FinalScores[2])
	assert.Equal(t, 20, result.FinalScores[3])
}

func TestScoreWizardIncompleteTrailingRound(t *testing.T) {
	rounds := []WizardRound{
		{Entries: map[int]WizardEntry{
			1: wizardEntry(1, 1),
			2: wizardEntry(0, 1),
			3: wizardEntry(1, 1),
		}},
		{Entries: map[int]WizardEntry{
			1: {Bid: intPtr(2)}, // bid placed, result pending
			2: {Bid: intPtr(0)},
			3: {Bid: intPtr(1)},
		}},
	}
	result := ScoreWizard(rounds, []int{1, 2, 3})

	assert.Equal(t, 2, result.CurrentRound)
	assert.Equal(t, 1, result.CompletedRounds)
	// The pending round contributes nothing yet.
	assert.Equal(t, map[int]int{1: 30, 2: -10, 3: 30}, result.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 3: 1, 2: 3}, result.Positions)
	assert.Equal(t, []int{30, 30}, result.RunningTotals[1])
}

func TestScoreWizardEmpty(t *testing.T) {
	result := ScoreWizard(nil, []int{1, 2, 3})

	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0}, result.FinalScores)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, result.Positions)
	assert.Equal(t, 0, result.CurrentRound)
	assert.Equal(t, 0, result.CompletedRounds)
}

func TestWizardRoundJSON(t *testing.T) {
	wire := `{"1":{"bid":2,"won":3},"2":{"bid":1},"_meta":{"werewolfPlayerId":1,"werewolfAdjustment":1}}`

	var round WizardRound
	require.NoError(t, json.Unmarshal([]byte(wire), &round))

	require.NotNil(t, round.Meta)
	assert.Equal(t, 1, round.Meta.WerewolfPlayerID)
	assert.Equal(t, 1, round.Meta.WerewolfAdjustment)
	require.Contains(t, round.Entries, 1)
	assert.Equal(t, 2, *round.Entries[1].Bid)
	assert.Equal(t, 3, *round.Entries[1].Won)
	require.Contains(t, round.Entries, 2)
	assert.Nil(t, round.Entries[2].Won)

	// Round-trips through the same wire shape.
	data, err := json.Marshal(round)
	require.NoError(t, err)
	var again WizardRound
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, round, again)
}
