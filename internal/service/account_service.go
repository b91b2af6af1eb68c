// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"
	"strings"

	"unburden/internal/middleware"
	"unburden/internal/models"
	"unburden/internal/observability"
	"unburden/internal/repository"
	"unburden/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	maxBioLen            = 200
	defaultProfileAvatar = "👤"
)

// AccountService handles profile lifecycle operations: onboarding completion,
// profile reads and updates, aggregated stats and account deletion.
type AccountService struct {
	userRepo       repository.UserRepository
	confessionRepo repository.ConfessionRepository
	followRepo     repository.FollowRepository
}

type CompleteProfileInput struct {
	UserID         uuid.UUID
	Bio            string
	Interests      []string
	ProfilePicture string
}

type UpdateProfileInput struct {
	UserID         uuid.UUID
	Username       string
	Bio            string
	ProfilePicture string
	Interests      []string
}

// ProfileStats aggregates a user's reach. ConfessionCount is the stored
// denormalized counter; the rest are live counts.
type ProfileStats struct {
	ConfessionCount int   `json:"confessionCount"`
	TotalLikes      int64 `json:"totalLikes"`
	TotalComments   int64 `json:"totalComments"`
	Followers       int64 `json:"followers"`
	Following       int64 `json:"following"`
}

func NewAccountService(
	userRepo repository.UserRepository,
	confessionRepo repository.ConfessionRepository,
	followRepo repository.FollowRepository,
) *AccountService {
	return &AccountService{
		userRepo:       userRepo,
		confessionRepo: confessionRepo,
		followRepo:     followRepo,
	}
}

func (s *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CompleteProfile fills onboarding fields and flips isOnboarded. A missing
// profile picture falls back to the default avatar.
func (s *AccountService) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	bio := strings.TrimSpace(in.Bio)
	if len([]rune(bio)) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 200 characters)")
	}

	user.Bio = bio
	user.Interests = datatypes.NewJSONSlice(in.Interests)
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	} else {
		user.ProfilePicture = defaultProfileAvatar
	}
	user.IsOnboarded = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if bio := strings.TrimSpace(in.Bio); bio != "" {
		if len([]rune(bio)) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 200 characters)")
		}
		user.Bio = bio
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}
	if in.Interests != nil {
		user.Interests = datatypes.NewJSONSlice(in.Interests)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetStats sums like and comment cardinalities across the user's confessions
// and pairs them with follower counts and the stored confession counter.
func (s *AccountService) GetStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	likes, comments, err := s.confessionRepo.CountEngagement(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		ConfessionCount: user.ConfessionCount,
		TotalLikes:      likes,
		TotalComments:   comments,
		Followers:       followers,
		Following:       following,
	}, nil
}

// DeleteAccount runs the deletion cascade as four independent writes, in
// order: the user's confessions (with their engagement rows), their outgoing
// follow edges, their incoming follow edges, and finally the user row. There
// is no transaction: a failure part-way leaves the earlier steps applied, and
// the caller sees the error for the step that failed. Likes and comments the
// user left on other people's confessions are intentionally kept.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.confessionRepo.DeleteByAuthor(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account deletion failed deleting confessions",
			slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return err
	}

	if err := s.followRepo.DeleteByFollower(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account deletion failed removing outgoing follows",
			slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return err
	}

	if err := s.followRepo.DeleteByFollowee(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account deletion failed removing incoming follows",
			slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account deletion failed deleting user",
			slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return err
	}

	observability.AccountDeletionsTotal.Inc()
	middleware.Logger.InfoContext(ctx, "account deleted", slog.String("user_id", userID.String()))
	return nil
}
