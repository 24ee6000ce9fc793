// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SearchCatalog handles GET /api/catalog/search?q=...
// A blank query returns an empty result without calling upstream.
func (s *Server) SearchCatalog(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	p := parsePagination(c, 20)

	results, err := s.catalog.Search(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(results)
}
