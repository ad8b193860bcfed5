package models

import (
	"time"

	"gorm.io/gorm"
)

// Evening is the container one game night lives in: a roster of players
// and the game records they share. Guests reach it through the short join
// code.
type Evening struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null"`
	Title     string         `json:"title" gorm:"not null"`
	Code      string         `json:"code" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User    User         `json:"user,omitempty"`
	Players []Player     `json:"players,omitempty" gorm:"foreignKey:EveningID"`
	Games   []GameRecord `json:"games,omitempty" gorm:"foreignKey:EveningID"`
}
