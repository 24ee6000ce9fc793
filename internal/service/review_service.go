package service

import (
	"context"
	"strings"

	"resonate/internal/cache"
	"resonate/internal/models"
	"resonate/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
}

type CreateReviewInput struct {
	UserID    uint
	TrackName string
	Artist    string
	Rating    int
	Body      string
}

type UpdateReviewInput struct {
	UserID   uint
	ReviewID uint
	Rating   int
	Body     string
}

type ListReviewsInput struct {
	Limit  int
	Offset int
}

// reactionKinds is the allowed set of review reactions.
var reactionKinds = map[string]bool{
	"like":  true,
	"fire":  true,
	"heart": true,
}

func NewReviewService(reviewRepo repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	const maxBodyLen = 10000

	if strings.TrimSpace(in.TrackName) == "" {
		return nil, models.NewValidationError("Track name is required")
	}
	if strings.TrimSpace(in.Artist) == "" {
		return nil, models.NewValidationError("Artist is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	if len(in.Body) > maxBodyLen {
		return nil, models.NewValidationError("Review body too long (max 10000 characters)")
	}

	review := &models.Review{
		TrackName: strings.TrimSpace(in.TrackName),
		Artist:    strings.TrimSpace(in.Artist),
		Rating:    in.Rating,
		Body:      in.Body,
		UserID:    in.UserID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	cache.InvalidateReviewFeed(ctx)

	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) ListReviews(ctx context.Context, in ListReviewsInput) ([]*models.Review, error) {
	// The first feed page is the hot path; serve it cache-aside.
	if in.Offset == 0 && in.Limit <= 20 {
		var reviews []*models.Review
		err := cache.Aside(ctx, cache.ReviewFeedKey, &reviews, cache.ReviewFeedTTL, func() error {
			var fetchErr error
			reviews, fetchErr = s.reviewRepo.List(ctx, in.Limit, in.Offset)
			return fetchErr
		})
		return reviews, err
	}
	return s.reviewRepo.List(ctx, in.Limit, in.Offset)
}

func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own reviews")
	}

	if in.Rating != 0 {
		if in.Rating < 1 || in.Rating > 5 {
			return nil, models.NewValidationError("Rating must be between 1 and 5")
		}
		review.Rating = in.Rating
	}
	if in.Body != "" {
		review.Body = in.Body
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	cache.InvalidateReviewFeed(ctx)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own reviews")
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	cache.InvalidateReviewFeed(ctx)
	return nil
}

// React sets the caller's reaction on a review, replacing any previous one.
func (s *ReviewService) React(ctx context.Context, userID, reviewID uint, kind string) (*models.Review, error) {
	if kind == "" {
		kind = "like"
	}
	if !reactionKinds[kind] {
		return nil, models.NewValidationError("Invalid reaction kind")
	}
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.React(ctx, userID, reviewID, kind); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, reviewID)
}

// Unreact removes the caller's reaction. Removing an absent reaction is a
// silent no-op.
func (s *ReviewService) Unreact(ctx context.Context, userID, reviewID uint) (*models.Review, error) {
	if err := s.reviewRepo.Unreact(ctx, userID, reviewID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, reviewID)
}
