package repository

import (
	"context"
	"errors"

	"resonate/internal/cache"
	"resonate/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations,
// including per-review reactions.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	List(ctx context.Context, limit, offset int) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	React(ctx context.Context, userID, reviewID uint, kind string) error
	Unreact(ctx context.Context, userID, reviewID uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateReviewFeed(ctx)
	return nil
}

// applyReviewDetails annotates queries with computed reaction/comment counts.
func (r *reviewRepository) applyReviewDetails(db *gorm.DB) *gorm.DB {
	return db.Select("reviews.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.review_id = reviews.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.review_id = reviews.id AND reactions.deleted_at IS NULL) as reactions_count")
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review

	if err := r.applyReviewDetails(r.db.WithContext(ctx)).
		Preload("User").
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review

	if err := r.applyReviewDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) List(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review

	if err := r.applyReviewDetails(r.db.WithContext(ctx)).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateReviewFeed(ctx)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateReviewFeed(ctx)
	return nil
}

func (r *reviewRepository) React(ctx context.Context, userID, reviewID uint, kind string) error {
	// INSERT ... ON CONFLICT keeps double reactions race-free: the second
	// writer updates the kind in place instead of failing on the unique index.
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO reactions (user_id, review_id, kind, created_at)
		 VALUES (?, ?, ?, NOW())
		 ON CONFLICT (user_id, review_id) DO UPDATE SET kind = EXCLUDED.kind`,
		userID, reviewID, kind,
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

func (r *reviewRepository) Unreact(ctx context.Context, userID, reviewID uint) error {
	// Hard delete the reaction record (not soft delete)
	if err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.Reaction{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
