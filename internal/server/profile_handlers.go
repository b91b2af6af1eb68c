package server

import (
	"unburden/internal/models"
	"unburden/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type updateProfileRequest struct {
	Username       string   `json:"username"`
	Bio            string   `json:"bio"`
	ProfilePicture string   `json:"profilePicture"`
	Interests      []string `json:"interests"`
}

type followRequest struct {
	FollowerID string `json:"followerId"`
}

// GetProfile returns the full user document, follower counts included.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.accountService.GetProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user,
	})
}

// UpdateProfile applies a partial update; empty fields are left unchanged.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         userID,
		Username:       req.Username,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		Interests:      req.Interests,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// GetUserConfessions lists all confessions by the user, newest first.
func (s *Server) GetUserConfessions(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	ctx := c.Context()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return mapServiceError(c, err)
	}

	confessions, err := s.confessionRepo.GetByAuthor(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"confessions": confessions,
		"count":       len(confessions),
	})
}

// GetUserStats returns the aggregated engagement numbers for a user.
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	stats, err := s.accountService.GetStats(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stats": stats,
	})
}

// FollowUser creates a follow edge from the body's followerId to the route's
// userId. Following twice is an error, not a no-op.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	followerID, err := s.parseFollowerID(c)
	if err != nil {
		return nil
	}

	if followerID == followeeID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Cannot follow yourself"))
	}

	ctx := c.Context()

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return mapServiceError(c, err)
	}
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return mapServiceError(c, err)
	}

	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Followed successfully",
	})
}

// UnfollowUser removes the follow edge. A missing edge is a 404.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	followerID, err := s.parseFollowerID(c)
	if err != nil {
		return nil
	}

	if err := s.followRepo.Delete(c.Context(), followerID, followeeID); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Unfollowed successfully",
	})
}

// parseFollowerID reads followerId from the JSON body, falling back to the
// bearer identity when the body omits it.
func (s *Server) parseFollowerID(c *fiber.Ctx) (uuid.UUID, error) {
	var req followRequest
	if err := c.BodyParser(&req); err == nil && req.FollowerID != "" {
		id, err := uuid.Parse(req.FollowerID)
		if err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid follower ID"))
			return uuid.Nil, errResponseWritten
		}
		return id, nil
	}

	if id, ok := c.Locals("userID").(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}

	_ = models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Follower ID is required"))
	return uuid.Nil, errResponseWritten
}

// DeleteAccount removes the user and their content.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.accountService.DeleteAccount(c.Context(), userID); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}
