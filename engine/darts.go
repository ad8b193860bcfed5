package engine

import (
	"fmt"
	"math"
	"sort"
)

// DartsScore is the single entry recorded per player when a darts game
// wraps up. A final score of zero means the player checked out.
type DartsScore struct {
	FinalScore    int  `json:"finalScore"`
	FinishedRound *int `json:"finishedRound,omitempty"`
}

// ScoreDarts determines the finish order from remaining-score pairs.
// Players who reached zero rank first, ordered by the round they finished
// in (unknown round sorts last within the finished group); everyone else
// follows by ascending remaining score.
func ScoreDarts(scores map[int]DartsScore) Result {
	finalScores := make(map[int]int, len(scores))

	type row struct {
		id       int
		finished bool
		round    int
		score    int
	}
	rows := make([]row, 0, len(scores))
	for id, entry := range scores {
		finalScores[id] = entry.FinalScore
		r := row{id: id, score: entry.FinalScore, round: math.MaxInt32}
		if entry.FinalScore == 0 {
			r.finished = true
			if entry.FinishedRound != nil {
				r.round = *entry.FinishedRound
			}
		}
		rows = append(rows, r)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.finished != b.finished {
			return a.finished
		}
		if a.round != b.round {
			return a.round < b.round
		}
		if a.score != b.score {
			return a.score < b.score
		}
		return a.id < b.id
	})

	entries := make([]RankEntry, len(rows))
	for i, r := range rows {
		bucket := 1
		if r.finished {
			bucket = 0
		}
		entries[i] = RankEntry{PlayerID: r.id, Key: fmt.Sprintf("%d|%d|%d", bucket, r.round, r.score)}
	}
	positions := AssignPositions(entries)

	return Result{
		FinalScores: finalScores,
		Positions:   positions,
		WinnerIDs:   winnerIDs(positions),
	}
}
