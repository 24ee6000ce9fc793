package service

import (
	"context"
	"errors"
	"strings"

	"resonate/internal/models"
	"resonate/internal/repository"
)

// searchCandidateLimit caps how many users a single candidate search returns.
const searchCandidateLimit = 10

// SendResult reports the outcome of a friend-request send. AlreadyRelated is
// set when a row for the pair already existed in either direction; the call
// is still a success.
type SendResult struct {
	AlreadyRelated bool
}

// PendingRequests splits a user's open requests into the ones they sent and
// the ones addressed to them.
type PendingRequests struct {
	Sent     []models.UserRef `json:"sent"`
	Received []models.UserRef `json:"received"`
}

// FriendService is the social-graph engine: the friend-request state machine
// and its query operations. Every operation takes the authenticated caller's
// user ID explicitly.
//
// Mutations are idempotent under repetition: accept, reject, cancel and
// unfriend silently succeed when the target row is already gone, because the
// counterpart may have withdrawn or actioned the request concurrently. That
// tolerance is deliberate; do not turn the no-ops into errors.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending friend request from the caller to the target
// user. If any relationship row already exists for the pair, in either
// direction and any status, the call is a no-op reporting AlreadyRelated.
func (s *FriendService) SendRequest(ctx context.Context, callerID, targetID uint) (*SendResult, error) {
	if targetID == 0 {
		return nil, models.NewValidationError("Target user is required")
	}
	if targetID == callerID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	exists, err := s.friendRepo.ExistsBetweenUsers(ctx, callerID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &SendResult{AlreadyRelated: true}, nil
	}

	createErr := s.friendRepo.Create(ctx, &models.Friendship{
		RequesterID: callerID,
		AddresseeID: targetID,
		Status:      models.FriendshipStatusPending,
	})
	if errors.Is(createErr, repository.ErrDuplicatePair) {
		// Lost a race against a concurrent send for the same pair; the store's
		// pair constraint caught it. Same outcome as the pre-check.
		return &SendResult{AlreadyRelated: true}, nil
	}
	if createErr != nil {
		return nil, createErr
	}

	return &SendResult{}, nil
}

// AcceptRequest accepts the pending request sent by requesterID to the
// caller. A missing or already-actioned request is a silent no-op.
func (s *FriendService) AcceptRequest(ctx context.Context, callerID, requesterID uint) error {
	_, err := s.friendRepo.AcceptPending(ctx, requesterID, callerID)
	return err
}

// RejectRequest deletes the pending request sent by requesterID to the
// caller. A missing request is a silent no-op.
func (s *FriendService) RejectRequest(ctx context.Context, callerID, requesterID uint) error {
	_, err := s.friendRepo.DeletePending(ctx, requesterID, callerID)
	return err
}

// CancelRequest withdraws the caller's own pending request to addresseeID.
// A missing request is a silent no-op.
func (s *FriendService) CancelRequest(ctx context.Context, callerID, addresseeID uint) error {
	if addresseeID == 0 {
		return models.NewValidationError("Addressee is required")
	}
	_, err := s.friendRepo.DeletePending(ctx, callerID, addresseeID)
	return err
}

// Unfriend removes an accepted friendship between the caller and otherID,
// regardless of who originally sent the request. A missing friendship is a
// silent no-op.
func (s *FriendService) Unfriend(ctx context.Context, callerID, otherID uint) error {
	_, err := s.friendRepo.DeleteAccepted(ctx, callerID, otherID)
	return err
}

// ListFriends returns the user's friends ordered by username, each annotated
// with their own friend count.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// ListPending returns the caller's open requests, split into sent and
// received queues.
func (s *FriendService) ListPending(ctx context.Context, callerID uint) (*PendingRequests, error) {
	sent, err := s.friendRepo.ListPendingSent(ctx, callerID)
	if err != nil {
		return nil, err
	}
	received, err := s.friendRepo.ListPendingReceived(ctx, callerID)
	if err != nil {
		return nil, err
	}

	out := &PendingRequests{
		Sent:     make([]models.UserRef, 0, len(sent)),
		Received: make([]models.UserRef, 0, len(received)),
	}
	for _, f := range sent {
		out.Sent = append(out.Sent, models.UserRef{UserID: f.AddresseeID, Username: f.Addressee.Username})
	}
	for _, f := range received {
		out.Received = append(out.Received, models.UserRef{UserID: f.RequesterID, Username: f.Requester.Username})
	}
	return out, nil
}

// SearchCandidates returns up to ten users matching the query who are not the
// caller and not already connected to them. A blank query returns an empty
// result without touching storage.
func (s *FriendService) SearchCandidates(ctx context.Context, callerID uint, query string) ([]models.UserRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserRef{}, nil
	}
	return s.friendRepo.SearchCandidates(ctx, callerID, query, searchCandidateLimit)
}

// AreFriends reports whether an accepted friendship exists between the two
// users, in either direction.
func (s *FriendService) AreFriends(ctx context.Context, userID, otherID uint) (bool, error) {
	if userID == otherID {
		return false, nil
	}
	return s.friendRepo.ExistsAccepted(ctx, userID, otherID)
}

// FriendCount returns the number of accepted friendships the user has.
func (s *FriendService) FriendCount(ctx context.Context, userID uint) (int64, error) {
	return s.friendRepo.CountFriends(ctx, userID)
}
