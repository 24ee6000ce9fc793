// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userService.GetUserByID(c.Context(), id)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	return c.JSON(user)
}

// GetUserReviews handles GET /api/users/:id/reviews
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	reviews, listErr := s.reviewService.GetUserReviews(c.Context(), id, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}
	return c.JSON(reviews)
}

// GetUserStatus handles GET /api/users/:id/status. Statuses are visible to
// the owner and their friends only. A user with no current status yields an
// empty object rather than a 404.
func (s *Server) GetUserStatus(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if id != callerID {
		friends, friendsErr := s.friendService.AreFriends(c.Context(), callerID, id)
		if friendsErr != nil {
			return respondServiceError(c, friendsErr)
		}
		if !friends {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Listening status is visible to friends only"))
		}
	}

	status, getErr := s.statusService.GetStatus(c.Context(), id)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	if status == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(status)
}
