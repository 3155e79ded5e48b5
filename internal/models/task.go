package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	DueDate     time.Time `gorm:"not null"`
	Priority    string    `gorm:"not null"` // "low", "medium", "high"
	Summary     string
	UserID      uint `gorm:"not null;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
