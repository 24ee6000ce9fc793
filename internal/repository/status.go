package repository

import (
	"context"
	"errors"

	"resonate/internal/cache"
	"resonate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusRepository persists per-user "currently listening" statuses.
type StatusRepository interface {
	Upsert(ctx context.Context, status *models.ListeningStatus) error
	GetByUserID(ctx context.Context, userID uint) (*models.ListeningStatus, error)
	Clear(ctx context.Context, userID uint) error
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new listening-status repository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Upsert(ctx context.Context, status *models.ListeningStatus) error {
	// One row per user; a new status replaces the previous one in place.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"track_name", "artist", "set_at"}),
		}).
		Create(status).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, status.UserID)
	return nil
}

func (r *statusRepository) GetByUserID(ctx context.Context, userID uint) (*models.ListeningStatus, error) {
	var status models.ListeningStatus
	key := cache.StatusKey(userID)

	err := cache.Aside(ctx, key, &status, cache.StatusTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&status).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("ListeningStatus", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ListeningStatus{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, userID)
	return nil
}
