// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"resonate/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicatePair is returned by Create when a friendship row already exists
// for the unordered user pair, in either direction. Callers treat it as an
// idempotent "already related" outcome, not a failure.
var ErrDuplicatePair = errors.New("friendship already exists for user pair")

// FriendRepository defines the interface for friendship data operations.
// Mutations that target a specific prior state (accept, reject, cancel,
// unfriend) are conditional single statements and report the number of rows
// they touched; zero means the expected row was gone, which callers treat as
// a no-op.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	ExistsBetweenUsers(ctx context.Context, userID1, userID2 uint) (bool, error)
	ExistsAccepted(ctx context.Context, userID1, userID2 uint) (bool, error)
	AcceptPending(ctx context.Context, requesterID, addresseeID uint) (int64, error)
	DeletePending(ctx context.Context, requesterID, addresseeID uint) (int64, error)
	DeleteAccepted(ctx context.Context, userID1, userID2 uint) (int64, error)
	ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error)
	ListPendingSent(ctx context.Context, userID uint) ([]models.Friendship, error)
	ListPendingReceived(ctx context.Context, userID uint) ([]models.Friendship, error)
	SearchCandidates(ctx context.Context, callerID uint, query string, limit int) ([]models.UserRef, error)
	CountFriends(ctx context.Context, userID uint) (int64, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicatePair
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) ExistsBetweenUsers(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64

	// Any row in either direction, regardless of status, counts as related.
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) ExistsAccepted(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, models.FriendshipStatusAccepted).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) AcceptPending(ctx context.Context, requesterID, addresseeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("requester_id = ? AND addressee_id = ? AND status = ?",
			requesterID, addresseeID, models.FriendshipStatusPending).
		Update("status", models.FriendshipStatusAccepted)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *friendRepository) DeletePending(ctx context.Context, requesterID, addresseeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("requester_id = ? AND addressee_id = ? AND status = ?",
			requesterID, addresseeID, models.FriendshipStatusPending).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *friendRepository) DeleteAccepted(ctx context.Context, userID1, userID2 uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, models.FriendshipStatusAccepted).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	var friends []models.FriendSummary

	// Resolve the counterpart of each accepted edge and annotate it with that
	// user's own accepted-edge degree.
	if err := r.db.WithContext(ctx).
		Table("friendships f").
		Select(`u.id AS user_id, u.username AS username,
			(SELECT COUNT(*) FROM friendships fc
			 WHERE fc.status = 'accepted'
			   AND (fc.requester_id = u.id OR fc.addressee_id = u.id)) AS friend_count`).
		Joins("JOIN users u ON u.id = CASE WHEN f.requester_id = ? THEN f.addressee_id ELSE f.requester_id END", userID).
		Where("f.status = ? AND (f.requester_id = ? OR f.addressee_id = ?)",
			models.FriendshipStatusAccepted, userID, userID).
		Where("u.deleted_at IS NULL").
		Order("u.username ASC").
		Scan(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return friends, nil
}

func (r *friendRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship

	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return friendships, nil
}

func (r *friendRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship

	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return friendships, nil
}

// likeEscaper neutralizes ILIKE metacharacters so a query of "a_b" matches
// the literal underscore, not any character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *friendRepository) SearchCandidates(ctx context.Context, callerID uint, query string, limit int) ([]models.UserRef, error) {
	var refs []models.UserRef

	// Case-insensitive substring match, excluding the caller and anyone already
	// connected to them by a row in either direction and any status.
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id AS user_id, username").
		Where("username ILIKE ?", "%"+likeEscaper.Replace(query)+"%").
		Where("id <> ?", callerID).
		Where(`NOT EXISTS (SELECT 1 FROM friendships f
			WHERE (f.requester_id = users.id AND f.addressee_id = ?)
			   OR (f.requester_id = ? AND f.addressee_id = users.id))`, callerID, callerID).
		Order("username ASC").
		Limit(limit).
		Scan(&refs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return refs, nil
}

func (r *friendRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("status = ? AND (requester_id = ? OR addressee_id = ?)",
			models.FriendshipStatusAccepted, userID, userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
