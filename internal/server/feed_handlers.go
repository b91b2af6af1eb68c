package server

import (
	"unburden/internal/models"
	"unburden/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type likeRequest struct {
	UserID string `json:"userId"`
}

type commentRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// GetFeed serves the paginated global feed, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page, limit := parsePageLimit(c, 10)

	feed, err := s.feedService.GetFeed(c.Context(), page, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

// GetTrending serves the most liked confessions of the last 24 hours.
func (s *Server) GetTrending(c *fiber.Ctx) error {
	confessions, err := s.feedService.GetTrending(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"confessions": confessions,
		"count":       len(confessions),
	})
}

// GetFollowingFeed serves confessions from the users the caller follows.
// The caller is named by the userId query parameter.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	raw := c.Query("userId")
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID is required"))
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	confessions, err := s.feedService.GetFollowingFeed(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"confessions": confessions,
		"count":       len(confessions),
	})
}

// GetConfession returns a single confession with author, likes and comments.
func (s *Server) GetConfession(c *fiber.Ctx) error {
	confessionID, err := s.parseUUID(c, "confessionId")
	if err != nil {
		return nil
	}

	confession, err := s.confessionService.GetConfession(c.Context(), confessionID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"confession": confession,
	})
}

// LikeConfession toggles the caller's like on a confession and reports the
// resulting state.
func (s *Server) LikeConfession(c *fiber.Ctx) error {
	confessionID, err := s.parseUUID(c, "confessionId")
	if err != nil {
		return nil
	}

	userID, err := s.parseBodyUserID(c)
	if err != nil {
		return nil
	}

	liked, err := s.confessionService.ToggleLike(c.Context(), confessionID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	message := "Confession unliked"
	if liked {
		message = "Confession liked"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"liked":   liked,
	})
}

// CommentOnConfession adds a comment and returns the updated confession.
func (s *Server) CommentOnConfession(c *fiber.Ctx) error {
	confessionID, err := s.parseUUID(c, "confessionId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID, err := s.resolveUserID(c, req.UserID)
	if err != nil {
		return nil
	}

	confession, err := s.confessionService.AddComment(c.Context(), service.AddCommentInput{
		ConfessionID: confessionID,
		UserID:       userID,
		Content:      req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Comment added",
		"confession": confession,
	})
}

// parseBodyUserID reads userId from the JSON body, falling back to the bearer
// identity. Writes a 400 and returns errResponseWritten when neither is set.
func (s *Server) parseBodyUserID(c *fiber.Ctx) (uuid.UUID, error) {
	var req likeRequest
	_ = c.BodyParser(&req)
	return s.resolveUserID(c, req.UserID)
}

func (s *Server) resolveUserID(c *fiber.Ctx, raw string) (uuid.UUID, error) {
	if raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid user ID"))
			return uuid.Nil, errResponseWritten
		}
		return id, nil
	}

	if id, ok := c.Locals("userID").(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}

	_ = models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("User ID is required"))
	return uuid.Nil, errResponseWritten
}
