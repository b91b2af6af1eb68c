// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"unburden/internal/cache"
	"unburden/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) error
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	ListFolloweeIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	DeleteByFollower(ctx context.Context, followerID uuid.UUID) error
	DeleteByFollowee(ctx context.Context, followeeID uuid.UUID) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, follow.FollowerID)
	cache.InvalidateUser(ctx, follow.FolloweeID)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow relationship")
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) ListFolloweeIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// DeleteByFollower removes the user's outgoing edges: after this nobody
// lists them among their followers.
func (r *followRepository) DeleteByFollower(ctx context.Context, followerID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteByFollowee removes the user's incoming edges: after this nobody
// lists them in a following list.
func (r *followRepository) DeleteByFollowee(ctx context.Context, followeeID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("followee_id = ?", followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
