package engine

import (
	"fmt"
	"sort"
)

// Phase10Entry is one player's result for a round: penalty points for
// cards left in hand and whether they laid down their current phase.
type Phase10Entry struct {
	Points         int  `json:"points"`
	PhaseCompleted bool `json:"phaseCompleted"`
}

// Phase10Round maps player ids to their round entries.
type Phase10Round map[int]Phase10Entry

const phase10PhaseCount = 10

// Phase10Result extends the common result with phase progress. Phases
// holds the phase each player is currently on (display value, capped at
// 10); Completers lists players who have finished all ten phases.
type Phase10Result struct {
	Result
	RunningTotals map[int][]int `json:"runningTotals"`
	Phases        map[int]int   `json:"phases"`
	Completers    []int         `json:"completers"`
}

// ScorePhase10 sums penalty points and tracks phase completion. Players
// who completed all ten phases rank above everyone else; within each
// group the lower total wins, points being penalties.
func ScorePhase10(rounds []Phase10Round, playerIDs []int) Phase10Result {
	totals := make(map[int]int, len(playerIDs))
	running := make(map[int][]int, len(playerIDs))
	completedPhases := make(map[int]int, len(playerIDs))
	for _, id := range playerIDs {
		totals[id] = 0
		running[id] = []int{}
	}

	for _, round := range rounds {
		for _, id := range playerIDs {
			entry := round[id]
			totals[id] += entry.Points
			if entry.PhaseCompleted {
				completedPhases[id]++
			}
			running[id] = append(running[id], totals[id])
		}
	}

	phases := make(map[int]int, len(playerIDs))
	var completers []int
	for _, id := range playerIDs {
		phase := 1 + completedPhases[id]
		if phase > phase10PhaseCount {
			phase = phase10PhaseCount
		}
		phases[id] = phase
		if completedPhases[id] >= phase10PhaseCount {
			completers = append(completers, id)
		}
	}
	sort.Ints(completers)

	isCompleter := func(id int) int {
		if completedPhases[id] >= phase10PhaseCount {
			return 0
		}
		return 1
	}

	ids := append([]int(nil), playerIDs...)
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if isCompleter(a) != isCompleter(b) {
			return isCompleter(a) < isCompleter(b)
		}
		if totals[a] != totals[b] {
			return totals[a] < totals[b]
		}
		return a < b
	})
	entries := make([]RankEntry, len(ids))
	for i, id := range ids {
		entries[i] = RankEntry{PlayerID: id, Key: fmt.Sprintf("%d|%d", isCompleter(id), totals[id])}
	}
	positions := AssignPositions(entries)

	return Phase10Result{
		Result: Result{
			FinalScores: totals,
			Positions:   positions,
			WinnerIDs:   winnerIDs(positions),
		},
		RunningTotals: running,
		Phases:        phases,
		Completers:    completers,
	}
}
