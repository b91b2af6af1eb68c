package service

import (
	"context"
	"time"

	"unburden/internal/cache"
	"unburden/internal/models"
	"unburden/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 100
	trendingWindow   = 24 * time.Hour
	trendingLimit    = 10
)

// Pagination describes the page served and the collection totals.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// FeedPage is one page of the global feed.
type FeedPage struct {
	Confessions []models.Confession `json:"confessions"`
	Pagination  Pagination          `json:"pagination"`
}

// FeedService serves the aggregated read models: the paginated global feed,
// trending and per-user following feeds.
type FeedService struct {
	confessionRepo repository.ConfessionRepository
	followRepo     repository.FollowRepository
	userRepo       repository.UserRepository
}

func NewFeedService(
	confessionRepo repository.ConfessionRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		confessionRepo: confessionRepo,
		followRepo:     followRepo,
		userRepo:       userRepo,
	}
}

// GetFeed returns confessions newest first with page/limit pagination.
// Out-of-range inputs are clamped rather than rejected.
func (s *FeedService) GetFeed(ctx context.Context, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	// Only the hot first pages at the default size are cached; everything
	// else goes straight to the store.
	cacheable := page <= 3 && limit == defaultFeedLimit
	if cacheable {
		var cached FeedPage
		if found, err := cache.GetJSON(ctx, cache.FeedPageKey(page, limit), &cached); err == nil && found {
			return &cached, nil
		}
	}

	offset := (page - 1) * limit
	confessions, err := s.confessionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.confessionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	result := &FeedPage{
		Confessions: confessions,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}

	if cacheable {
		_ = cache.SetJSON(ctx, cache.FeedPageKey(page, limit), result, cache.FeedTTL)
	}
	return result, nil
}

// GetTrending returns the ten most liked confessions of the last 24 hours,
// ties broken by recency.
func (s *FeedService) GetTrending(ctx context.Context) ([]models.Confession, error) {
	var confessions []models.Confession
	err := cache.Aside(ctx, cache.TrendingKey, &confessions, cache.TrendingTTL, func() error {
		var fetchErr error
		confessions, fetchErr = s.confessionRepo.Trending(ctx, time.Now().Add(-trendingWindow), trendingLimit)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return confessions, nil
}

// GetFollowingFeed returns every confession authored by users the given user
// follows, newest first. Unpaged, matching the global feed's sibling route.
func (s *FeedService) GetFollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Confession, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	followeeIDs, err := s.followRepo.ListFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.confessionRepo.ListByAuthors(ctx, followeeIDs)
}
