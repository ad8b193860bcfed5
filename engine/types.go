package engine

// GameType identifies one of the supported score-tracking games.
type GameType string

const (
	GameTypeDarts   GameType = "darts"
	GameTypeWizard  GameType = "wizard"
	GameTypePhase10 GameType = "phase10"
	GameTypePool    GameType = "pool"
)

// Result is the common output of every scorer: a numeric score and a
// 1-based position per player, plus the set of players at position 1.
type Result struct {
	FinalScores map[int]int `json:"finalScores"`
	Positions   map[int]int `json:"positions"`
	WinnerIDs   []int       `json:"winnerIds"`
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
