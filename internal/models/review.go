// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a music review posted by a user.
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TrackName string `gorm:"not null" json:"track_name"`
	Artist    string `gorm:"not null" json:"artist"`
	Rating    int    `gorm:"not null" json:"rating"`
	Body      string `gorm:"type:text" json:"body"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	// ReactionsCount is not persisted; computed at query time
	ReactionsCount int `gorm:"->" json:"reactions_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
