package models

import (
	"time"
)

// ListeningStatus is a user's "currently listening" banner. One row per user,
// upserted in place; clearing the track removes the row.
type ListeningStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	TrackName string    `gorm:"not null" json:"track_name"`
	Artist    string    `json:"artist"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SetAt     time.Time `gorm:"autoUpdateTime" json:"set_at"`
}
