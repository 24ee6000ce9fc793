package models

import (
	"time"

	"gorm.io/gorm"
)

// Reaction represents a user's reaction on a review.
// The combination of UserID and ReviewID must be unique.
type Reaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_user_review" json:"user_id"`
	ReviewID  uint           `gorm:"not null;uniqueIndex:idx_user_review" json:"review_id"`
	Kind      string         `gorm:"type:varchar(20);default:'like'" json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Review Review `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
}
