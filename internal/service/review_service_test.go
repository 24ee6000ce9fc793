package service

import (
	"context"
	"errors"
	"testing"

	"resonate/internal/models"
)

type reviewRepoStub struct {
	createFn      func(context.Context, *models.Review) error
	getByIDFn     func(context.Context, uint) (*models.Review, error)
	getByUserIDFn func(context.Context, uint, int, int) ([]*models.Review, error)
	listFn        func(context.Context, int, int) ([]*models.Review, error)
	updateFn      func(context.Context, *models.Review) error
	deleteFn      func(context.Context, uint) error
	reactFn       func(context.Context, uint, uint, string) error
	unreactFn     func(context.Context, uint, uint) error
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *reviewRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) React(ctx context.Context, userID, reviewID uint, kind string) error {
	return s.reactFn(ctx, userID, reviewID, kind)
}
func (s *reviewRepoStub) Unreact(ctx context.Context, userID, reviewID uint) error {
	return s.unreactFn(ctx, userID, reviewID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:      func(context.Context, *models.Review) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Review, error) { return &models.Review{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int) ([]*models.Review, error) { return nil, nil },
		listFn:        func(context.Context, int, int) ([]*models.Review, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Review) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		reactFn:       func(context.Context, uint, uint, string) error { return nil },
		unreactFn:     func(context.Context, uint, uint) error { return nil },
	}
}

func expectValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestReviewServiceCreateValidation(t *testing.T) {
	svc := NewReviewService(noopReviewRepo())
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, CreateReviewInput{UserID: 1, Artist: "Bon Iver", Rating: 3})
	expectValidationError(t, err)

	_, err = svc.CreateReview(ctx, CreateReviewInput{UserID: 1, TrackName: "Holocene", Rating: 3})
	expectValidationError(t, err)

	_, err = svc.CreateReview(ctx, CreateReviewInput{UserID: 1, TrackName: "Holocene", Artist: "Bon Iver", Rating: 6})
	expectValidationError(t, err)
}

func TestReviewServiceUpdateOwnerOnly(t *testing.T) {
	repo := noopReviewRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Review, error) {
		return &models.Review{ID: 4, UserID: 9}, nil
	}

	svc := NewReviewService(repo)
	_, err := svc.UpdateReview(context.Background(), UpdateReviewInput{UserID: 2, ReviewID: 4, Rating: 5})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}

func TestReviewServiceReactInvalidKind(t *testing.T) {
	svc := NewReviewService(noopReviewRepo())
	_, err := svc.React(context.Background(), 1, 4, "meh")
	expectValidationError(t, err)
}

func TestReviewServiceReactDefaultsToLike(t *testing.T) {
	repo := noopReviewRepo()
	var gotKind string
	repo.reactFn = func(_ context.Context, _, _ uint, kind string) error {
		gotKind = kind
		return nil
	}

	svc := NewReviewService(repo)
	if _, err := svc.React(context.Background(), 1, 4, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKind != "like" {
		t.Fatalf("expected default kind like, got %q", gotKind)
	}
}
