package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestScoreDarts(t *testing.T) {
	tests := []struct {
		name              string
		scores            map[int]DartsScore
		expectedWinners   []int
		expectedPositions map[int]int
	}{
		{
			name:              "empty game",
			scores:            map[int]DartsScore{},
			expectedWinners:   nil,
			expectedPositions: map[int]int{},
		},
		{
			name: "single finisher wins",
			scores: map[int]DartsScore{
				1: {FinalScore: 0, FinishedRound: intPtr(12)},
				2: {FinalScore: 40},
				3: {FinalScore: 120},
			},
			expectedWinners:   []int{1},
			expectedPositions: map[int]int{1: 1, 2: 2, 3: 3},
		},
		{
			name: "earlier round beats later round",
			scores: map[int]DartsScore{
				1: {FinalScore: 0, FinishedRound: intPtr(15)},
				2: {FinalScore: 0, FinishedRound: intPtr(11)},
				3: {FinalScore: 60},
			},
			expectedWinners:   []int{2},
			expectedPositions: map[int]int{2: 1, 1: 2, 3: 3},
		},
		{
			name: "both at zero with no round recorded is a draw",
			scores: map[int]DartsScore{
				1: {FinalScore: 0},
				2: {FinalScore: 0},
				3: {FinalScore: 33},
			},
			expectedWinners:   []int{1, 2},
			expectedPositions: map[int]int{1: 1, 2: 1, 3: 3},
		},
		{
			name: "known round beats unknown round within finishers",
			scores: map[int]DartsScore{
				1: {FinalScore: 0},
				2: {FinalScore: 0, FinishedRound: intPtr(9)},
			},
			expectedWinners:   []int{2},
			expectedPositions: map[int]int{2: 1, 1: 2},
		},
		{
			name: "nobody finished, lowest remaining score wins",
			scores: map[int]DartsScore{
				1: {FinalScore: 80},
				2: {FinalScore: 12},
				3: {FinalScore: 12},
			},
			expectedWinners:   []int{2, 3},
			expectedPositions: map[int]int{2: 1, 3: 1, 1: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreDarts(tt.scores)
			assert.Equal(t, tt.expectedWinners, result.WinnerIDs)
			assert.Equal(t, tt.expectedPositions, result.Positions)
		})
	}
}

func TestScoreDartsDeterministic(t *testing.T) {
	scores := map[int]DartsScore{
		1: {FinalScore: 0, FinishedRound: intPtr(10)},
		2: {FinalScore: 0, FinishedRound: intPtr(10)},
		3: {FinalScore: 5},
		4: {FinalScore: 5},
	}
	first := ScoreDarts(scores)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ScoreDarts(scores))
	}
}
