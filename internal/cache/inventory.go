package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix       = "user:%s"
	ConfessionKeyPrefix = "confession:%s"
	FeedPageKeyPrefix   = "feed:page:%d:limit:%d"
	TrendingKey         = "feed:trending"
)

const (
	UserTTL       = 5 * time.Minute
	ConfessionTTL = 10 * time.Minute
	FeedTTL       = 30 * time.Second
	TrendingTTL   = time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ConfessionKey(confessionID uuid.UUID) string {
	return fmt.Sprintf(ConfessionKeyPrefix, confessionID)
}

func FeedPageKey(page, limit int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, page, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateConfession(ctx context.Context, confessionID uuid.UUID) {
	Invalidate(ctx, ConfessionKey(confessionID))
}

// InvalidateFeed drops the cached feed pages and the trending list. Only the
// first few pages are ever cached, so a bounded scan of key names suffices.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	for page := 1; page <= cachedFeedPages; page++ {
		client.Del(ctx, FeedPageKey(page, defaultFeedLimit))
	}
	client.Del(ctx, TrendingKey)
}

const (
	cachedFeedPages  = 3
	defaultFeedLimit = 10
)
