// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"unburden/internal/cache"
	"unburden/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfessionRepository defines the interface for confession data operations.
// Likes and comments live here too: they are row-backed but behave like the
// embedded engagement lists of a single confession document.
type ConfessionRepository interface {
	Create(ctx context.Context, confession *models.Confession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Confession, error)
	GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Confession, error)
	List(ctx context.Context, limit, offset int) ([]models.Confession, error)
	Count(ctx context.Context) (int64, error)
	Trending(ctx context.Context, since time.Time, limit int) ([]models.Confession, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]models.Confession, error)
	Update(ctx context.Context, confession *models.Confession) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error

	IsLiked(ctx context.Context, confessionID, userID uuid.UUID) (bool, error)
	Like(ctx context.Context, confessionID, userID uuid.UUID) error
	Unlike(ctx context.Context, confessionID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *models.Comment) error
	CountEngagement(ctx context.Context, authorID uuid.UUID) (likes int64, comments int64, err error)
}

type confessionRepository struct {
	db *gorm.DB
}

// NewConfessionRepository creates a new confession repository.
func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &confessionRepository{db: db}
}

// applyConfessionDetails adds subqueries to fetch engagement counts in a
// single query. The aliases are also what trending sorts on.
func applyConfessionDetails(db *gorm.DB) *gorm.DB {
	return db.Select("confessions.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.confession_id = confessions.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.confession_id = confessions.id) as comments_count")
}

// withAssociations preloads the author, the likes set and the ordered
// comment list with commenters.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User")
}

func (r *confessionRepository) Create(ctx context.Context, confession *models.Confession) error {
	if err := r.db.WithContext(ctx).Create(confession).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *confessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Confession, error) {
	var confession models.Confession
	key := cache.ConfessionKey(id)

	err := cache.Aside(ctx, key, &confession, cache.ConfessionTTL, func() error {
		if err := withAssociations(applyConfessionDetails(r.db.WithContext(ctx))).
			Where("confessions.id = ?", id).
			First(&confession).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Confession")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &confession, nil
}

func (r *confessionRepository) GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Confession, error) {
	var confessions []models.Confession
	if err := withAssociations(applyConfessionDetails(r.db.WithContext(ctx))).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&confessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return confessions, nil
}

func (r *confessionRepository) List(ctx context.Context, limit, offset int) ([]models.Confession, error) {
	var confessions []models.Confession
	if err := withAssociations(applyConfessionDetails(r.db.WithContext(ctx))).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&confessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return confessions, nil
}

func (r *confessionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Confession{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *confessionRepository) Trending(ctx context.Context, since time.Time, limit int) ([]models.Confession, error) {
	var confessions []models.Confession
	// likes_count is a SELECT alias from applyConfessionDetails; both
	// postgres and sqlite allow ordering by it at the same query level.
	if err := withAssociations(applyConfessionDetails(r.db.WithContext(ctx))).
		Where("confessions.created_at > ?", since).
		Order("likes_count DESC, created_at DESC").
		Limit(limit).
		Find(&confessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return confessions, nil
}

func (r *confessionRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]models.Confession, error) {
	if len(authorIDs) == 0 {
		return []models.Confession{}, nil
	}
	var confessions []models.Confession
	if err := withAssociations(applyConfessionDetails(r.db.WithContext(ctx))).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&confessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return confessions, nil
}

func (r *confessionRepository) Update(ctx context.Context, confession *models.Confession) error {
	if err := r.db.WithContext(ctx).Save(confession).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConfession(ctx, confession.ID)
	cache.InvalidateFeed(ctx)
	return nil
}

// Delete removes a confession and its engagement rows. Three separate
// statements, no transaction; likes and comments are dependent data with no
// life of their own outside the confession.
func (r *confessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("confession_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Where("confession_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Confession{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConfession(ctx, id)
	cache.InvalidateFeed(ctx)
	return nil
}

// DeleteByAuthor removes every confession a user authored, engagement rows
// included. Used by the account deletion cascade.
func (r *confessionRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	subquery := r.db.Model(&models.Confession{}).Select("id").Where("author_id = ?", authorID)

	if err := r.db.WithContext(ctx).Where("confession_id IN (?)", subquery).Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Where("confession_id IN (?)", subquery).Delete(&models.Comment{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Confession{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *confessionRepository) IsLiked(ctx context.Context, confessionID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("confession_id = ? AND user_id = ?", confessionID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *confessionRepository) Like(ctx context.Context, confessionID, userID uuid.UUID) error {
	// ON CONFLICT DO NOTHING keeps the toggle race-safe: two concurrent
	// likes insert one row, matching set semantics.
	like := models.Like{ConfessionID: confessionID, UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConfession(ctx, confessionID)
	return nil
}

func (r *confessionRepository) Unlike(ctx context.Context, confessionID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("confession_id = ? AND user_id = ?", confessionID, userID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConfession(ctx, confessionID)
	return nil
}

func (r *confessionRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateConfession(ctx, comment.ConfessionID)
	return nil
}

// CountEngagement sums like and comment cardinalities across every
// confession the user authored.
func (r *confessionRepository) CountEngagement(ctx context.Context, authorID uuid.UUID) (int64, int64, error) {
	var likes, comments int64

	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN confessions ON confessions.id = likes.confession_id").
		Where("confessions.author_id = ?", authorID).
		Count(&likes).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN confessions ON confessions.id = comments.confession_id").
		Where("confessions.author_id = ?", authorID).
		Count(&comments).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	return likes, comments, nil
}
