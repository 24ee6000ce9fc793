package service

import (
	"context"
	"errors"
	"strings"

	"resonate/internal/models"
	"resonate/internal/repository"
)

type StatusService struct {
	statusRepo repository.StatusRepository
}

type SetStatusInput struct {
	UserID    uint
	TrackName string
	Artist    string
}

func NewStatusService(statusRepo repository.StatusRepository) *StatusService {
	return &StatusService{statusRepo: statusRepo}
}

// SetStatus upserts the user's "currently listening" banner.
func (s *StatusService) SetStatus(ctx context.Context, in SetStatusInput) (*models.ListeningStatus, error) {
	if strings.TrimSpace(in.TrackName) == "" {
		return nil, models.NewValidationError("Track name is required")
	}

	status := &models.ListeningStatus{
		UserID:    in.UserID,
		TrackName: strings.TrimSpace(in.TrackName),
		Artist:    strings.TrimSpace(in.Artist),
	}
	if err := s.statusRepo.Upsert(ctx, status); err != nil {
		return nil, err
	}
	return s.statusRepo.GetByUserID(ctx, in.UserID)
}

// GetStatus returns the user's current banner, or nil when none is set.
func (s *StatusService) GetStatus(ctx context.Context, userID uint) (*models.ListeningStatus, error) {
	status, err := s.statusRepo.GetByUserID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, err
	}
	return status, nil
}

// ClearStatus removes the banner. Clearing an absent banner is a no-op.
func (s *StatusService) ClearStatus(ctx context.Context, userID uint) error {
	return s.statusRepo.Clear(ctx, userID)
}
