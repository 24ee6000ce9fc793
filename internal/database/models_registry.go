package database

import "resonate/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.Review{},
		&models.Comment{},
		&models.Reaction{},
		&models.ListeningStatus{},
	}
}
