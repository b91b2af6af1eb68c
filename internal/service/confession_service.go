package service

import (
	"context"
	"strings"

	"unburden/internal/models"
	"unburden/internal/observability"
	"unburden/internal/repository"

	"github.com/google/uuid"
)

const (
	maxConfessionLen = 500
	maxCommentLen    = 200
)

// ConfessionService handles confession writes and engagement.
type ConfessionService struct {
	confessionRepo repository.ConfessionRepository
	userRepo       repository.UserRepository
}

type CreateConfessionInput struct {
	AuthorID    uuid.UUID
	Content     string
	IsAnonymous *bool
}

type UpdateConfessionInput struct {
	ConfessionID uuid.UUID
	Content      string
}

type AddCommentInput struct {
	ConfessionID uuid.UUID
	UserID       uuid.UUID
	Content      string
}

func NewConfessionService(
	confessionRepo repository.ConfessionRepository,
	userRepo repository.UserRepository,
) *ConfessionService {
	return &ConfessionService{
		confessionRepo: confessionRepo,
		userRepo:       userRepo,
	}
}

// CreateConfession validates and stores a confession, then bumps the author's
// denormalized counter with a second, independent write.
func (s *ConfessionService) CreateConfession(ctx context.Context, in CreateConfessionInput) (*models.Confession, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > maxConfessionLen {
		return nil, models.NewValidationError("Confession must be 500 characters or less")
	}
	if in.AuthorID == uuid.Nil {
		return nil, models.NewValidationError("User ID is required")
	}

	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	isAnonymous := true
	if in.IsAnonymous != nil {
		isAnonymous = *in.IsAnonymous
	}

	confession := &models.Confession{
		Content:     content,
		AuthorID:    in.AuthorID,
		IsAnonymous: isAnonymous,
	}
	if err := s.confessionRepo.Create(ctx, confession); err != nil {
		return nil, err
	}

	// Counter update is deliberately a separate statement; if it fails the
	// confession still exists and the counter drifts.
	if err := s.userRepo.AdjustConfessionCount(ctx, in.AuthorID, 1); err != nil {
		return nil, err
	}

	observability.ConfessionsCreatedTotal.Inc()
	return s.confessionRepo.GetByID(ctx, confession.ID)
}

func (s *ConfessionService) GetConfession(ctx context.Context, id uuid.UUID) (*models.Confession, error) {
	return s.confessionRepo.GetByID(ctx, id)
}

// UpdateConfession replaces the content wholesale. There is no ownership
// check: the API never verifies the caller, matching every other write here.
func (s *ConfessionService) UpdateConfession(ctx context.Context, in UpdateConfessionInput) (*models.Confession, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > maxConfessionLen {
		return nil, models.NewValidationError("Confession must be 500 characters or less")
	}

	confession, err := s.confessionRepo.GetByID(ctx, in.ConfessionID)
	if err != nil {
		return nil, err
	}

	confession.Content = content
	if err := s.confessionRepo.Update(ctx, confession); err != nil {
		return nil, err
	}
	return s.confessionRepo.GetByID(ctx, in.ConfessionID)
}

// DeleteConfession removes the confession and then decrements the author's
// counter with its own write.
func (s *ConfessionService) DeleteConfession(ctx context.Context, id uuid.UUID) error {
	confession, err := s.confessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.confessionRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.userRepo.AdjustConfessionCount(ctx, confession.AuthorID, -1)
}

// ToggleLike flips the user's membership in the confession's likes set and
// reports the resulting state.
func (s *ConfessionService) ToggleLike(ctx context.Context, confessionID, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, models.NewValidationError("User ID is required")
	}

	if _, err := s.confessionRepo.GetByID(ctx, confessionID); err != nil {
		return false, err
	}

	liked, err := s.confessionRepo.IsLiked(ctx, confessionID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.confessionRepo.Unlike(ctx, confessionID, userID); err != nil {
			return false, err
		}
		observability.EngagementEventsTotal.WithLabelValues("unlike").Inc()
		return false, nil
	}

	if err := s.confessionRepo.Like(ctx, confessionID, userID); err != nil {
		return false, err
	}
	observability.EngagementEventsTotal.WithLabelValues("like").Inc()
	return true, nil
}

// AddComment appends an immutable comment and returns the updated confession.
func (s *ConfessionService) AddComment(ctx context.Context, in AddCommentInput) (*models.Confession, error) {
	if in.UserID == uuid.Nil {
		return nil, models.NewValidationError("User ID is required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len([]rune(content)) > maxCommentLen {
		return nil, models.NewValidationError("Comment must be 200 characters or less")
	}

	if _, err := s.confessionRepo.GetByID(ctx, in.ConfessionID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ConfessionID: in.ConfessionID,
		UserID:       in.UserID,
		Content:      content,
	}
	if err := s.confessionRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	observability.EngagementEventsTotal.WithLabelValues("comment").Inc()
	return s.confessionRepo.GetByID(ctx, in.ConfessionID)
}
