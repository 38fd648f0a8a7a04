// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newshub/internal/cache"
	"newshub/internal/middleware"
	"newshub/internal/models"
	"newshub/internal/observability"
	"newshub/internal/repository"

	"gorm.io/gorm"
)

// NewsService assembles reader-facing feeds and runs the interaction flows.
type NewsService struct {
	newsRepo        repository.NewsRepository
	interactionRepo repository.InteractionRepository
	categoryRepo    repository.CategoryRepository

	defaultPageSize int
	maxPageSize     int
}

// ListNewsInput carries the feed query parameters after handler parsing.
type ListNewsInput struct {
	Page     int
	Size     int
	Category string
	Keyword  string
	SortBy   string
	Order    string
	UserID   uint
}

// NewNewsService creates a new NewsService.
func NewNewsService(
	newsRepo repository.NewsRepository,
	interactionRepo repository.InteractionRepository,
	categoryRepo repository.CategoryRepository,
	defaultPageSize, maxPageSize int,
) *NewsService {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = 100
	}
	return &NewsService{
		newsRepo:        newsRepo,
		interactionRepo: interactionRepo,
		categoryRepo:    categoryRepo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// normalizeFilter clamps pagination and validates filter values.
func (s *NewsService) normalizeFilter(in ListNewsInput) (repository.NewsFilter, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size <= 0 {
		in.Size = s.defaultPageSize
	}
	if in.Size > s.maxPageSize {
		in.Size = s.maxPageSize
	}

	if in.Category != "" && !models.IsKnownCategory(in.Category) {
		return repository.NewsFilter{}, models.NewValidationError(fmt.Sprintf("Unknown category %q", in.Category))
	}

	order := strings.ToLower(in.Order)
	if order != "asc" && order != "desc" && order != "" {
		return repository.NewsFilter{}, models.NewValidationError("Order must be asc or desc")
	}

	sortBy := strings.ToLower(in.SortBy)
	if sortBy == "" {
		sortBy = "published_at"
	}
	switch sortBy {
	case "published_at", "view_count", "like_count":
	default:
		return repository.NewsFilter{}, models.NewValidationError(fmt.Sprintf("Cannot sort by %q", in.SortBy))
	}

	return repository.NewsFilter{
		Category: in.Category,
		Keyword:  strings.TrimSpace(in.Keyword),
		SortBy:   sortBy,
		SortDesc: order != "asc",
		Page:     in.Page,
		Size:     in.Size,
	}, nil
}

// ListNews returns one page of the published feed with the pagination
// envelope. Anonymous pages are served cache-aside; personalized state is
// not part of the list payload, so the cache is user-agnostic.
func (s *NewsService) ListNews(ctx context.Context, in ListNewsInput) (*models.NewsList, error) {
	filter, err := s.normalizeFilter(in)
	if err != nil {
		return nil, err
	}

	var page models.NewsList
	key := cache.NewsListKey(filter.Fingerprint())
	err = cache.Aside(ctx, "news_list", key, &page, cache.NewsListTTL, func() error {
		items, total, err := s.newsRepo.List(ctx, filter)
		if err != nil {
			return models.NewInternalError(err)
		}

		summaries := make([]models.NewsSummary, 0, len(items))
		for _, item := range items {
			summaries = append(summaries, item.ToSummary())
		}
		page = models.NewsList{
			Items:   summaries,
			Total:   total,
			Page:    filter.Page,
			Size:    filter.Size,
			HasNext: total > int64(filter.Page*filter.Size),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetNewsDetail returns the full article with the post-increment view count
// and the caller's interaction state. The view is recorded best-effort for
// logged-in readers.
func (s *NewsService) GetNewsDetail(ctx context.Context, newsID, userID uint) (*models.NewsDetail, error) {
	news, err := s.newsRepo.GetPublishedByID(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", newsID)
		}
		return nil, models.NewInternalError(err)
	}

	if err := s.newsRepo.IncrementViewCount(ctx, newsID); err != nil {
		return nil, models.NewInternalError(err)
	}
	news.ViewCount++

	detail := &models.NewsDetail{News: *news, UserInteractions: map[string]bool{}}

	if userID != 0 {
		s.recordInteraction(ctx, userID, newsID, models.InteractionView)

		active, err := s.interactionRepo.ActiveTypes(ctx, userID, newsID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		detail.UserInteractions = active
	}

	return detail, nil
}

// recordInteraction stores the interaction without ever failing the caller.
// Store errors are logged, counted, and dropped.
func (s *NewsService) recordInteraction(ctx context.Context, userID, newsID uint, t models.InteractionType) {
	if err := s.interactionRepo.Record(ctx, userID, newsID, t); err != nil {
		observability.InteractionRecordDrops.Inc()
		middleware.Logger.WarnContext(ctx, "interaction record dropped",
			slog.Uint64("news_id", uint64(newsID)),
			slog.String("type", string(t)),
			slog.String("error", err.Error()),
		)
	}
}

// requirePublished loads the article or maps its absence to NotFound.
func (s *NewsService) requirePublished(ctx context.Context, newsID uint) (*models.News, error) {
	news, err := s.newsRepo.GetPublishedByID(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", newsID)
		}
		return nil, models.NewInternalError(err)
	}
	return news, nil
}

// ToggleLike flips the caller's like on the article. The insert-if-absent
// result decides the branch, so concurrent duplicate requests settle on one
// insert and one no-op instead of a double count.
func (s *NewsService) ToggleLike(ctx context.Context, userID, newsID uint) (*models.ToggleResult, error) {
	if _, err := s.requirePublished(ctx, newsID); err != nil {
		return nil, err
	}

	inserted, err := s.interactionRepo.InsertIfAbsent(ctx, userID, newsID, models.InteractionLike)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	action := models.ToggleActionAdded
	if inserted {
		if err := s.newsRepo.AdjustLikeCount(ctx, newsID, 1); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		deleted, err := s.interactionRepo.DeleteIfPresent(ctx, userID, newsID, models.InteractionLike)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		action = models.ToggleActionRemoved
		if deleted {
			if err := s.newsRepo.AdjustLikeCount(ctx, newsID, -1); err != nil {
				return nil, models.NewInternalError(err)
			}
		}
	}
	observability.RecordToggle(string(models.InteractionLike), action)

	news, err := s.requirePublished(ctx, newsID)
	if err != nil {
		return nil, err
	}

	isLiked := action == models.ToggleActionAdded
	return &models.ToggleResult{
		Action:    action,
		LikeCount: &news.LikeCount,
		IsLiked:   &isLiked,
	}, nil
}

// ToggleFavorite flips the caller's favorite. Favorites carry no
// denormalized counter.
func (s *NewsService) ToggleFavorite(ctx context.Context, userID, newsID uint) (*models.ToggleResult, error) {
	if _, err := s.requirePublished(ctx, newsID); err != nil {
		return nil, err
	}

	inserted, err := s.interactionRepo.InsertIfAbsent(ctx, userID, newsID, models.InteractionFavorite)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	action := models.ToggleActionAdded
	if !inserted {
		if _, err := s.interactionRepo.DeleteIfPresent(ctx, userID, newsID, models.InteractionFavorite); err != nil {
			return nil, models.NewInternalError(err)
		}
		action = models.ToggleActionRemoved
	}
	observability.RecordToggle(string(models.InteractionFavorite), action)

	isFavorited := action == models.ToggleActionAdded
	return &models.ToggleResult{
		Action:      action,
		IsFavorited: &isFavorited,
	}, nil
}

// ShareNews bumps the share counter unconditionally and records the caller's
// share best-effort. Repeated shares keep counting.
func (s *NewsService) ShareNews(ctx context.Context, userID, newsID uint) (*models.ShareResult, error) {
	if _, err := s.requirePublished(ctx, newsID); err != nil {
		return nil, err
	}

	if err := s.newsRepo.IncrementShareCount(ctx, newsID); err != nil {
		return nil, models.NewInternalError(err)
	}
	if userID != 0 {
		s.recordInteraction(ctx, userID, newsID, models.InteractionShare)
	}

	news, err := s.requirePublished(ctx, newsID)
	if err != nil {
		return nil, err
	}

	return &models.ShareResult{
		ShareCount: news.ShareCount,
		ShareURL:   fmt.Sprintf("/news/%d", newsID),
		Title:      news.Title,
	}, nil
}

// trendingMaxLimit caps the hot list independently of the feed page size,
// which is configurable well past what a trending screen can show.
const trendingMaxLimit = 50

// Trending returns the most viewed published articles.
func (s *NewsService) Trending(ctx context.Context, limit int) ([]models.NewsSummary, error) {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > trendingMaxLimit {
		limit = trendingMaxLimit
	}

	var summaries []models.NewsSummary
	key := cache.TrendingKey(limit)
	err := cache.Aside(ctx, "trending", key, &summaries, cache.TrendingTTL, func() error {
		items, err := s.newsRepo.Trending(ctx, limit)
		if err != nil {
			return models.NewInternalError(err)
		}
		summaries = make([]models.NewsSummary, 0, len(items))
		for _, item := range items {
			summaries = append(summaries, item.ToSummary())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Categories returns active categories in navigation order.
func (s *NewsService) Categories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// Favorites returns the caller's favorited articles, most recently
// favorited first.
func (s *NewsService) Favorites(ctx context.Context, userID uint, page, size int) ([]models.NewsSummary, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.defaultPageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}

	ids, err := s.interactionRepo.ListNewsIDs(ctx, userID, models.InteractionFavorite, size, (page-1)*size)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	summaries := make([]models.NewsSummary, 0, len(ids))
	for _, id := range ids {
		news, err := s.newsRepo.GetPublishedByID(ctx, id)
		if err != nil {
			// Unpublished favorites silently drop out of the list
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, models.NewInternalError(err)
		}
		summaries = append(summaries, news.ToSummary())
	}
	return summaries, nil
}
