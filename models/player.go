package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	EveningID uint           `json:"evening_id" gorm:"not null"`
	Name      string         `json:"name" gorm:"not null"`
	AvatarURL string         `json:"avatarUrl,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Evening Evening `json:"evening,omitempty"`
}
