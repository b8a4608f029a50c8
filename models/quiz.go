package models

import (
	"time"
)

type Quiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public" gorm:"not null;default:false"`
	ImageURL    *string   `json:"image_url"`
	PlaysCount  int       `json:"plays_count" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	User      User       `json:"user,omitempty"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}
