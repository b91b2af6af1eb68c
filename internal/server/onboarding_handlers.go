package server

import (
	"log/slog"
	"strings"

	"unburden/internal/middleware"
	"unburden/internal/models"
	"unburden/internal/service"
	"unburden/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type completeProfileRequest struct {
	Bio            string   `json:"bio"`
	Interests      []string `json:"interests"`
	ProfilePicture string   `json:"profilePicture"`
}

// Register creates a new account and returns a signed token alongside the
// user summary.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Emails are stored lowercase so lookups and the unique index are
	// case-insensitive.
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	ctx := c.Context()

	// Two separate lookups followed by the insert. A concurrent registration
	// can slip between them; the unique indexes catch it and the create
	// surfaces a validation error instead.
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return mapServiceError(c, err)
	} else if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User with this email already exists"))
	}
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err != nil {
		return mapServiceError(c, err)
	} else if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username already taken"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return mapServiceError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return mapServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "token generation failed",
			slog.String("error", err.Error()))
		return mapServiceError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Login authenticates by email and password. Bad email and bad password give
// the same response so the endpoint does not confirm which emails exist.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	ctx := c.Context()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return mapServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "token generation failed",
			slog.String("error", err.Error()))
		return mapServiceError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// CompleteProfile fills onboarding fields for the user in the route.
func (s *Server) CompleteProfile(c *fiber.Ctx) error {
	userID, err := s.parseUUID(c, "userId")
	if err != nil {
		return nil
	}

	var req completeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.CompleteProfile(c.Context(), service.CompleteProfileInput{
		UserID:         userID,
		Bio:            req.Bio,
		Interests:      req.Interests,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile completed successfully",
		"user":    user,
	})
}
