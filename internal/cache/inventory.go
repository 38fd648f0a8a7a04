package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	NewsKeyPrefix     = "news:%d"
	NewsListKeyPrefix = "news:list:%s"
	TrendingKeyPrefix = "news:trending:%d"
	CategoriesKey     = "categories:active"
	UserKeyPrefix     = "user:%d"
)

const (
	NewsTTL       = 30 * time.Minute
	NewsListTTL   = 5 * time.Minute
	TrendingTTL   = 5 * time.Minute
	CategoriesTTL = time.Hour
	UserTTL       = 5 * time.Minute
)

func NewsKey(newsID uint) string {
	return fmt.Sprintf(NewsKeyPrefix, newsID)
}

// NewsListKey builds the cache key for one page of the filtered feed. The
// fingerprint encodes every filter and pagination parameter.
func NewsListKey(fingerprint string) string {
	return fmt.Sprintf(NewsListKeyPrefix, fingerprint)
}

func TrendingKey(limit int) string {
	return fmt.Sprintf(TrendingKeyPrefix, limit)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateNews drops the cached article. List pages are left to expire on
// their short TTL.
func InvalidateNews(ctx context.Context, newsID uint) {
	Invalidate(ctx, NewsKey(newsID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}
