package engine

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the engine's read-only view of a persisted game record.
// Exactly one of Rounds, Games or Scores is populated, depending on the
// game type; the engine never mutates it.
type Snapshot struct {
	GameType  GameType
	PlayerIDs []int
	Rounds    json.RawMessage
	Games     json.RawMessage
	Scores    json.RawMessage
}

// Scorecard is the uniform result of scoring a snapshot. Details carries
// the type-specific extras (running totals, phases, standings table) for
// the transport layer to pass through.
type Scorecard struct {
	Result
	Details map[string]interface{} `json:"details,omitempty"`
}

// ScoreFunc recomputes scores and positions for one game type.
type ScoreFunc func(snapshot Snapshot) (*Scorecard, error)

// GameTypeConfig declares the player-count bounds and the scorer of one
// game type.
type GameTypeConfig struct {
	MinPlayers int
	MaxPlayers int
	Score      ScoreFunc
}

// Registry is the explicit game-type table handed to the collaborator
// layers at startup.
type Registry map[GameType]GameTypeConfig

// DefaultRegistry returns the built-in game types.
func DefaultRegistry() Registry {
	return Registry{
		GameTypeDarts:   {MinPlayers: 2, MaxPlayers: 8, Score: scoreDartsSnapshot},
		GameTypeWizard:  {MinPlayers: 3, MaxPlayers: 6, Score: scoreWizardSnapshot},
		GameTypePhase10: {MinPlayers: 2, MaxPlayers: 6, Score: scorePhase10Snapshot},
		GameTypePool:    {MinPlayers: 2, MaxPlayers: 10, Score: scorePoolSnapshot},
	}
}

// Score dispatches a snapshot to the scorer registered for its game type.
func (r Registry) Score(snapshot Snapshot) (*Scorecard, error) {
	config, ok := r[snapshot.GameType]
	if !ok {
		return nil, fmt.Errorf("unknown game type %q", snapshot.GameType)
	}
	return config.Score(snapshot)
}

// ValidatePlayerCount reports whether a game of the given type can be
// played with the given number of players.
func (r Registry) ValidatePlayerCount(gameType GameType, playerCount int) error {
	config, ok := r[gameType]
	if !ok {
		return fmt.Errorf("unknown game type %q", gameType)
	}
	if playerCount < config.MinPlayers || playerCount > config.MaxPlayers {
		return fmt.Errorf("%s requires %d to %d players, got %d",
			gameType, config.MinPlayers, config.MaxPlayers, playerCount)
	}
	return nil
}

func scoreDartsSnapshot(snapshot Snapshot) (*Scorecard, error) {
	scores := map[int]DartsScore{}
	if len(snapshot.Scores) > 0 {
		if err := json.Unmarshal(snapshot.Scores, &scores); err != nil {
			return nil, fmt.Errorf("invalid darts scores: %w", err)
		}
	}
	result := ScoreDarts(scores)
	return &Scorecard{Result: result}, nil
}

func scoreWizardSnapshot(snapshot Snapshot) (*Scorecard, error) {
	var rounds []WizardRound
	if len(snapshot.Rounds) > 0 {
		if err := json.Unmarshal(snapshot.Rounds, &rounds); err != nil {
			return nil, fmt.Errorf("invalid wizard rounds: %w", err)
		}
	}
	result := ScoreWizard(rounds, snapshot.PlayerIDs)
	return &Scorecard{
		Result: result.Result,
		Details: map[string]interface{}{
			"runningTotals":   result.RunningTotals,
			"currentRound":    result.CurrentRound,
			"completedRounds": result.CompletedRounds,
			"totalRounds":     result.TotalRounds,
		},
	}, nil
}

func scorePhase10Snapshot(snapshot Snapshot) (*Scorecard, error) {
	var rounds []Phase10Round
	if len(snapshot.Rounds) > 0 {
		if err := json.Unmarshal(snapshot.Rounds, &rounds); err != nil {
			return nil, fmt.Errorf("invalid phase 10 rounds: %w", err)
		}
	}
	result := ScorePhase10(rounds, snapshot.PlayerIDs)
	return &Scorecard{
		Result: result.Result,
		Details: map[string]interface{}{
			"runningTotals": result.RunningTotals,
			"phases":        result.Phases,
			"completers":    result.Completers,
		},
	}, nil
}

func scorePoolSnapshot(snapshot Snapshot) (*Scorecard, error) {
	var matches []PoolMatch
	if len(snapshot.Games) > 0 {
		if err := json.Unmarshal(snapshot.Games, &matches); err != nil {
			return nil, fmt.Errorf("invalid pool matches: %w", err)
		}
	}
	result := ScorePool(matches, snapshot.PlayerIDs)
	return &Scorecard{
		Result: result.Result,
		Details: map[string]interface{}{
			"standings": result.Standings,
		},
	}, nil
}
