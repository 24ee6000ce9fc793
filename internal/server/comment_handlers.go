// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/reviews/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, createErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   userID,
		ReviewID: reviewID,
		Content:  req.Content,
	})
	if createErr != nil {
		return respondServiceError(c, createErr)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/reviews/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	comments, listErr := s.commentService.ListComments(c.Context(), reviewID, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/reviews/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if deleteErr := s.commentService.DeleteComment(c.Context(), userID, commentID); deleteErr != nil {
		return respondServiceError(c, deleteErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
