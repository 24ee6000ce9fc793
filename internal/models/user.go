// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered Resonate user.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Reviews   []Review       `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

// UserRef is the minimal user projection exposed in friend-request queues
// and candidate search results.
type UserRef struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// FriendSummary is a friend-list entry: the counterpart user of an accepted
// edge annotated with that user's own friend count.
type FriendSummary struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	FriendCount int64  `json:"friend_count"`
}
