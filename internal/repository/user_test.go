package repository

import (
	"context"
	"testing"

	"resonate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	u := makeUser(t, "ur")

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, got.Username)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetByEmail absent returns nil without error", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@nowhere.example")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Create duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			Username: u.Username,
			Email:    "other_" + u.Email,
			Password: "x",
		})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
