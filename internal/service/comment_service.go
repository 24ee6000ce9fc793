package service

import (
	"context"
	"strings"

	"resonate/internal/models"
	"resonate/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

type CreateCommentInput struct {
	UserID   uint
	ReviewID uint
	Content  string
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 2000

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.reviewRepo.GetByID(ctx, in.ReviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		ReviewID: in.ReviewID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, reviewID uint, limit, offset int) ([]models.Comment, error) {
	return s.commentRepo.ListByReview(ctx, reviewID, limit, offset)
}

// DeleteComment removes a comment. The comment's author and the review's
// author may both delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		review, err := s.reviewRepo.GetByID(ctx, comment.ReviewID)
		if err != nil {
			return err
		}
		if review.UserID != userID {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}
