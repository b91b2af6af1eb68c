package server

import (
	"unburden/internal/models"
	"unburden/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type createConfessionRequest struct {
	Content     string `json:"content"`
	UserID      string `json:"userId"`
	IsAnonymous *bool  `json:"isAnonymous"`
}

type updateConfessionRequest struct {
	Content string `json:"content"`
}

// CreateConfessionPost stores a new confession authored by the body's userId.
func (s *Server) CreateConfessionPost(c *fiber.Ctx) error {
	var req createConfessionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var authorID uuid.UUID
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid user ID"))
		}
		authorID = id
	} else if id, ok := c.Locals("userID").(uuid.UUID); ok {
		authorID = id
	}

	confession, err := s.confessionService.CreateConfession(c.Context(), service.CreateConfessionInput{
		AuthorID:    authorID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Confession posted successfully",
		"post":    confession,
	})
}

// GetConfessionPost returns one confession by ID.
func (s *Server) GetConfessionPost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "postId")
	if err != nil {
		return nil
	}

	confession, err := s.confessionService.GetConfession(c.Context(), postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"post": confession,
	})
}

// UpdateConfessionPost replaces a confession's content.
func (s *Server) UpdateConfessionPost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "postId")
	if err != nil {
		return nil
	}

	var req updateConfessionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	confession, err := s.confessionService.UpdateConfession(c.Context(), service.UpdateConfessionInput{
		ConfessionID: postID,
		Content:      req.Content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Confession updated successfully",
		"post":    confession,
	})
}

// DeleteConfessionPost removes a confession and its engagement rows.
func (s *Server) DeleteConfessionPost(c *fiber.Ctx) error {
	postID, err := s.parseUUID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.confessionService.DeleteConfession(c.Context(), postID); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Confession deleted successfully",
	})
}
