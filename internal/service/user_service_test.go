package service

import (
	"context"
	"testing"

	"resonate/internal/models"
)

func TestUserServiceUpdateProfileUsernameTooLong(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   1,
		Username: "this-username-is-way-over-thirty-characters-long",
	})
	expectValidationError(t, err)
}

func TestUserServiceUpdateProfilePartial(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, Username: "miles", Bio: "old bio"}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}

	svc := NewUserService(users)
	got, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: "new bio"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "miles" || got.Bio != "new bio" {
		t.Fatalf("unexpected profile: %#v", got)
	}
	if updated == nil {
		t.Fatal("expected repository update")
	}
}

func TestUserServiceDeleteAccount(t *testing.T) {
	users := noopUserRepo()
	var deleted uint
	users.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}

	svc := NewUserService(users)
	if err := svc.DeleteAccount(context.Background(), 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 9 {
		t.Fatalf("expected user 9 deleted, got %d", deleted)
	}
}

func TestUserServiceDeleteAccountUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	users.deleteFn = func(context.Context, uint) error {
		t.Fatal("delete should not run for an unknown user")
		return nil
	}

	svc := NewUserService(users)
	if err := svc.DeleteAccount(context.Background(), 9); err == nil {
		t.Fatal("expected not-found error")
	}
}
