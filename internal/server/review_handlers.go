// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		TrackName string `json:"track_name"`
		Artist    string `json:"artist"`
		Rating    int    `json:"rating"`
		Body      string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		UserID:    userID,
		TrackName: req.TrackName,
		Artist:    req.Artist,
		Rating:    req.Rating,
		Body:      req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /api/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reviews, err := s.reviewService.ListReviews(c.Context(), service.ListReviewsInput{
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, getErr := s.reviewService.GetReview(c.Context(), id)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	return c.JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Body   string `json:"body"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, updateErr := s.reviewService.UpdateReview(c.Context(), service.UpdateReviewInput{
		UserID:   userID,
		ReviewID: id,
		Rating:   req.Rating,
		Body:     req.Body,
	})
	if updateErr != nil {
		return respondServiceError(c, updateErr)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.reviewService.DeleteReview(c.Context(), userID, id); deleteErr != nil {
		return respondServiceError(c, deleteErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReactToReview handles POST /api/reviews/:id/reactions. Reacting twice
// replaces the previous reaction kind.
func (s *Server) ReactToReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Kind string `json:"kind"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, reactErr := s.reviewService.React(c.Context(), userID, id, req.Kind)
	if reactErr != nil {
		return respondServiceError(c, reactErr)
	}
	return c.JSON(review)
}

// UnreactToReview handles DELETE /api/reviews/:id/reactions
func (s *Server) UnreactToReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, unreactErr := s.reviewService.Unreact(c.Context(), userID, id)
	if unreactErr != nil {
		return respondServiceError(c, unreactErr)
	}
	return c.JSON(review)
}
