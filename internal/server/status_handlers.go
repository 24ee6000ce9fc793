// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"resonate/internal/models"
	"resonate/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyStatus handles GET /api/status
func (s *Server) GetMyStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	status, err := s.statusService.GetStatus(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if status == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(status)
}

// SetStatus handles PUT /api/status
func (s *Server) SetStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		TrackName string `json:"track_name"`
		Artist    string `json:"artist"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.statusService.SetStatus(c.Context(), service.SetStatusInput{
		UserID:    userID,
		TrackName: req.TrackName,
		Artist:    req.Artist,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// ClearStatus handles DELETE /api/status. Clearing an absent status succeeds
// silently.
func (s *Server) ClearStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.statusService.ClearStatus(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
