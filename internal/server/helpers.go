// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"strings"
	"unicode"

	"unburden/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPaginationLimit = 100

// parsePageLimit extracts page/limit query parameters. Out-of-range values
// are clamped, never rejected.
func parsePageLimit(c *fiber.Ctx, defaultLimit int) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit = c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return page, limit
}

// parseUUID extracts a route parameter by name as a UUID.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "confessionId" -> "confession ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// mapServiceError writes the HTTP response matching an AppError's code.
func mapServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		}
	}

	return models.RespondWithError(c, status, err)
}
