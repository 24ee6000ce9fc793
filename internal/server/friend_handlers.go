// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, sendErr := s.friendService.SendRequest(c.Context(), userID, targetUserID)
	if sendErr != nil {
		return respondServiceError(c, sendErr)
	}

	if result.AlreadyRelated {
		return c.JSON(fiber.Map{
			"ok":              true,
			"already_related": true,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// GetPendingRequests handles GET /api/friends/requests. Returns the caller's
// open requests split into sent and received queues.
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	pending, err := s.friendService.ListPending(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pending)
}

// AcceptFriendRequest handles POST /api/friends/requests/:userId/accept where
// :userId is the request's sender. Accepting an already-actioned request
// succeeds silently.
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if acceptErr := s.friendService.AcceptRequest(c.Context(), userID, requesterID); acceptErr != nil {
		return respondServiceError(c, acceptErr)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// RejectFriendRequest handles POST /api/friends/requests/:userId/reject where
// :userId is the request's sender.
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if rejectErr := s.friendService.RejectRequest(c.Context(), userID, requesterID); rejectErr != nil {
		return respondServiceError(c, rejectErr)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// CancelFriendRequest handles DELETE /api/friends/requests/:userId where
// :userId is the request's addressee.
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	addresseeID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if cancelErr := s.friendService.CancelRequest(c.Context(), userID, addresseeID); cancelErr != nil {
		return respondServiceError(c, cancelErr)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.ListFriends(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetFriendCount handles GET /api/friends/count
func (s *Server) GetFriendCount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	count, err := s.friendService.FriendCount(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// SearchFriendCandidates handles GET /api/friends/search?q=...
func (s *Server) SearchFriendCandidates(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	candidates, err := s.friendService.SearchCandidates(c.Context(), userID, c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(candidates)
}

// RemoveFriend handles DELETE /api/friends/:userId. Removing an absent
// friendship succeeds silently.
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if removeErr := s.friendService.Unfriend(c.Context(), userID, targetUserID); removeErr != nil {
		return respondServiceError(c, removeErr)
	}
	return c.JSON(fiber.Map{"ok": true})
}
