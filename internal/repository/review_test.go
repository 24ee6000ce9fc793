package repository

import (
	"context"
	"testing"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_Integration(t *testing.T) {
	repo := NewReviewRepository(testDB)
	ctx := context.Background()

	author := makeUser(t, "rv")
	reader := makeUser(t, "rv2")

	review := &models.Review{
		TrackName: "Holocene",
		Artist:    "Bon Iver",
		Rating:    5,
		Body:      "still holds up",
		UserID:    author.ID,
	}
	require.NoError(t, repo.Create(ctx, review))

	t.Run("GetByID includes computed counts", func(t *testing.T) {
		require.NoError(t, repo.React(ctx, reader.ID, review.ID, "like"))

		got, err := repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "Holocene", got.TrackName)
		assert.Equal(t, 1, got.ReactionsCount)
	})

	t.Run("React is idempotent per user", func(t *testing.T) {
		require.NoError(t, repo.React(ctx, reader.ID, review.ID, "fire"))

		got, err := repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ReactionsCount)
	})

	t.Run("Unreact removes the reaction", func(t *testing.T) {
		require.NoError(t, repo.Unreact(ctx, reader.ID, review.ID))

		got, err := repo.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ReactionsCount)
	})

	t.Run("List newest first", func(t *testing.T) {
		second := &models.Review{
			TrackName: "Re: Stacks",
			Artist:    "Bon Iver",
			Rating:    4,
			UserID:    author.ID,
		}
		require.NoError(t, repo.Create(ctx, second))

		reviews, err := repo.GetByUserID(ctx, author.ID, 10, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(reviews), 2)
		assert.Equal(t, "Re: Stacks", reviews[0].TrackName)
	})
}
