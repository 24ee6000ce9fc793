package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUser(t *testing.T, tag string) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", tag, ts),
		Email:    fmt.Sprintf("%s_%d@e.com", tag, ts),
		Password: "x",
	}
	require.NoError(t, testDB.Create(u).Error)
	return u
}

func TestFriendRepository_Integration(t *testing.T) {
	repo := NewFriendRepository(testDB)
	ctx := context.Background()

	u1 := makeUser(t, "fa")
	u2 := makeUser(t, "fb")

	t.Run("Create and ListPendingReceived", func(t *testing.T) {
		friendship := &models.Friendship{
			RequesterID: u1.ID,
			AddresseeID: u2.ID,
			Status:      models.FriendshipStatusPending,
		}

		err := repo.Create(ctx, friendship)
		require.NoError(t, err)

		received, err := repo.ListPendingReceived(ctx, u2.ID)
		assert.NoError(t, err)
		assert.Len(t, received, 1)
		assert.Equal(t, u1.ID, received[0].RequesterID)
		assert.Equal(t, u1.Username, received[0].Requester.Username)

		sent, err := repo.ListPendingSent(ctx, u1.ID)
		assert.NoError(t, err)
		assert.Len(t, sent, 1)
		assert.Equal(t, u2.Username, sent[0].Addressee.Username)
	})

	t.Run("Create duplicate pair fails in either direction", func(t *testing.T) {
		err := repo.Create(ctx, &models.Friendship{
			RequesterID: u1.ID, AddresseeID: u2.ID, Status: models.FriendshipStatusPending,
		})
		assert.ErrorIs(t, err, ErrDuplicatePair)

		err = repo.Create(ctx, &models.Friendship{
			RequesterID: u2.ID, AddresseeID: u1.ID, Status: models.FriendshipStatusPending,
		})
		assert.ErrorIs(t, err, ErrDuplicatePair)
	})

	t.Run("ExistsBetweenUsers sees both directions", func(t *testing.T) {
		exists, err := repo.ExistsBetweenUsers(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBetweenUsers(ctx, u2.ID, u1.ID)
		assert.NoError(t, err)
		assert.True(t, exists)

		// Still pending, so the accepted-only check says no.
		accepted, err := repo.ExistsAccepted(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("AcceptPending by addressee only", func(t *testing.T) {
		// Wrong direction: u1 is the requester, not the addressee.
		n, err := repo.AcceptPending(ctx, u2.ID, u1.ID)
		assert.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.AcceptPending(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, n)

		// Already accepted, nothing pending to accept.
		n, err = repo.AcceptPending(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.Zero(t, n)

		accepted, err := repo.ExistsAccepted(ctx, u2.ID, u1.ID)
		assert.NoError(t, err)
		assert.True(t, accepted)
	})

	t.Run("ListFriends and CountFriends", func(t *testing.T) {
		friends, err := repo.ListFriends(ctx, u1.ID)
		assert.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, u2.ID, friends[0].UserID)
		assert.Equal(t, u2.Username, friends[0].Username)
		assert.EqualValues(t, 1, friends[0].FriendCount)

		count, err := repo.CountFriends(ctx, u2.ID)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("DeleteAccepted from either side", func(t *testing.T) {
		n, err := repo.DeleteAccepted(ctx, u2.ID, u1.ID)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = repo.DeleteAccepted(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.Zero(t, n)

		count, err := repo.CountFriends(ctx, u1.ID)
		assert.NoError(t, err)
		assert.Zero(t, count)

		accepted, err := repo.ExistsAccepted(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("DeletePending requires exact direction", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Friendship{
			RequesterID: u1.ID, AddresseeID: u2.ID, Status: models.FriendshipStatusPending,
		}))

		// u2 cancelling as requester matches nothing; the row stays.
		n, err := repo.DeletePending(ctx, u2.ID, u1.ID)
		assert.NoError(t, err)
		assert.Zero(t, n)

		n, err = repo.DeletePending(ctx, u1.ID, u2.ID)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}

func TestFriendRepository_SearchCandidates(t *testing.T) {
	repo := NewFriendRepository(testDB)
	ctx := context.Background()

	caller := makeUser(t, "sc_caller")
	pendingPeer := makeUser(t, "sc_pending")
	acceptedPeer := makeUser(t, "sc_friend")
	stranger := makeUser(t, "sc_free")

	require.NoError(t, repo.Create(ctx, &models.Friendship{
		RequesterID: caller.ID, AddresseeID: pendingPeer.ID, Status: models.FriendshipStatusPending,
	}))
	require.NoError(t, repo.Create(ctx, &models.Friendship{
		RequesterID: acceptedPeer.ID, AddresseeID: caller.ID, Status: models.FriendshipStatusAccepted,
	}))

	refs, err := repo.SearchCandidates(ctx, caller.ID, "sc_", 10)
	require.NoError(t, err)

	ids := make(map[uint]bool, len(refs))
	for _, ref := range refs {
		ids[ref.UserID] = true
	}
	assert.True(t, ids[stranger.ID], "unrelated user should be searchable")
	assert.False(t, ids[caller.ID], "caller must never see themselves")
	assert.False(t, ids[pendingPeer.ID], "pending relation is excluded")
	assert.False(t, ids[acceptedPeer.ID], "accepted relation is excluded")
}

func TestFriendRepository_SearchCandidatesLiteralUnderscore(t *testing.T) {
	repo := NewFriendRepository(testDB)
	ctx := context.Background()

	withUnderscore := makeUser(t, "lu_x")
	without := makeUser(t, "luax")

	refs, err := repo.SearchCandidates(ctx, withUnderscore.ID+without.ID+1000, "lu_", 10)
	require.NoError(t, err)

	ids := make(map[uint]bool, len(refs))
	for _, ref := range refs {
		ids[ref.UserID] = true
	}
	assert.True(t, ids[withUnderscore.ID], "literal underscore should match")
	assert.False(t, ids[without.ID], "underscore must not act as a wildcard")
}
