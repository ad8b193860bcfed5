package models

import (
	"time"

	"gamenight/engine"

	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// GameRecord is the persisted unit of one game inside an evening, keyed
// by evening plus block id. Rounds, Games and Scores hold the raw
// per-game-type payload; FinalScores and Positions are derived on every
// read while the game runs and frozen verbatim once it completes, so
// later scoring changes never rewrite history.
type GameRecord struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	EveningID   uint            `json:"evening_id" gorm:"not null;uniqueIndex:idx_evening_block"`
	BlockID     string          `json:"blockId" gorm:"not null;uniqueIndex:idx_evening_block"`
	GameType    engine.GameType `json:"gameType" gorm:"not null"`
	PlayerIDs   IntSlice        `json:"playerIds" gorm:"type:jsonb;not null"`
	Status      string          `json:"status" gorm:"not null;default:'pending'"`
	Rounds      RawPayload      `json:"rounds,omitempty" gorm:"type:jsonb"`
	Games       RawPayload      `json:"games,omitempty" gorm:"type:jsonb"`
	Scores      RawPayload      `json:"scores,omitempty" gorm:"type:jsonb"`
	FinalScores IntMap          `json:"finalScores,omitempty" gorm:"type:jsonb"`
	Positions   IntMap          `json:"positions,omitempty" gorm:"type:jsonb"`
	WinnerID    *int            `json:"winnerId,omitempty"`
	WinnerIDs   IntSlice        `json:"winnerIds,omitempty" gorm:"type:jsonb"`
	StartedAt   *time.Time      `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relationships
	Evening Evening `json:"evening,omitempty"`
}

// Snapshot returns the engine's read-only view of this record.
func (g *GameRecord) Snapshot() engine.Snapshot {
	return engine.Snapshot{
		GameType:  g.GameType,
		PlayerIDs: append([]int(nil), g.PlayerIDs...),
		Rounds:    []byte(g.Rounds),
		Games:     []byte(g.Games),
		Scores:    []byte(g.Scores),
	}
}
