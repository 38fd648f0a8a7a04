// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"newshub/internal/cache"
	"newshub/internal/models"
	"newshub/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsFilter captures the feed query parameters applied by List.
type NewsFilter struct {
	Category string
	Keyword  string
	SortBy   string
	SortDesc bool
	Page     int
	Size     int
}

// Fingerprint returns a stable cache key component for the filter.
func (f NewsFilter) Fingerprint() string {
	order := "asc"
	if f.SortDesc {
		order = "desc"
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%d|%d", f.Category, f.Keyword, f.SortBy, order, f.Page, f.Size)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:8])
}

// NewsRepository defines the interface for news data operations
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	GetPublishedByID(ctx context.Context, id uint) (*models.News, error)
	List(ctx context.Context, filter NewsFilter) ([]*models.News, int64, error)
	Trending(ctx context.Context, limit int) ([]*models.News, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id uint) error
	UpsertBySlug(ctx context.Context, news *models.News) (bool, error)

	IncrementViewCount(ctx context.Context, id uint) error
	AdjustLikeCount(ctx context.Context, id uint, delta int) error
	AdjustCommentCount(ctx context.Context, id uint, delta int) error
	IncrementShareCount(ctx context.Context, id uint) error
}

// newsRepository implements NewsRepository
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// GetPublishedByID loads an article visible to readers. Draft and archived
// articles are indistinguishable from missing ones.
func (r *newsRepository) GetPublishedByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.NewsStatusPublished).
		First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// sortColumns whitelists the fields a client may sort the feed by.
var sortColumns = map[string]string{
	"published_at": "published_at",
	"view_count":   "view_count",
	"like_count":   "like_count",
}

func (r *newsRepository) applyFilter(db *gorm.DB, filter NewsFilter) *gorm.DB {
	q := db.Where("status = ?", models.NewsStatusPublished)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(summary) LIKE LOWER(?)", like, like)
	}
	return q
}

// List returns one page of the published feed plus the exact total count
// under the same filter.
func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]*models.News, int64, error) {
	defer observability.NewDatabaseMetrics(r.db).TrackQuery("list", "news")()

	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.News{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "published_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var items []*models.News
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order(fmt.Sprintf("%s %s", column, direction)).
		Limit(filter.Size).
		Offset((filter.Page - 1) * filter.Size).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Trending ranks published articles by views, breaking ties by likes.
func (r *newsRepository) Trending(ctx context.Context, limit int) ([]*models.News, error) {
	var items []*models.News
	err := r.db.WithContext(ctx).
		Where("status = ?", models.NewsStatusPublished).
		Order("view_count DESC, like_count DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *newsRepository) Update(ctx context.Context, news *models.News) error {
	if err := r.db.WithContext(ctx).Save(news).Error; err != nil {
		return err
	}
	cache.InvalidateNews(ctx, news.ID)
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.News{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateNews(ctx, id)
	return nil
}

// UpsertBySlug inserts the article unless one with the same slug already
// exists. Returns true when a new row was created. Existing articles are
// left untouched so reader counters survive re-ingestion.
func (r *newsRepository) UpsertBySlug(ctx context.Context, news *models.News) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(news)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementViewCount bumps the view counter in a single UPDATE so concurrent
// readers never lose increments.
func (r *newsRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err == nil {
		cache.InvalidateNews(ctx, id)
	}
	return err
}

// AdjustLikeCount applies a relative counter update. Decrements are guarded
// so the counter never goes below zero.
func (r *newsRepository) AdjustLikeCount(ctx context.Context, id uint, delta int) error {
	q := r.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id)
	if delta < 0 {
		q = q.Where("like_count >= ?", -delta)
	}
	err := q.UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
	if err == nil {
		cache.InvalidateNews(ctx, id)
	}
	return err
}

// AdjustCommentCount mirrors AdjustLikeCount for the comment counter.
func (r *newsRepository) AdjustCommentCount(ctx context.Context, id uint, delta int) error {
	q := r.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id)
	if delta < 0 {
		q = q.Where("comment_count >= ?", -delta)
	}
	err := q.UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error
	if err == nil {
		cache.InvalidateNews(ctx, id)
	}
	return err
}

func (r *newsRepository) IncrementShareCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.News{}).
		Where("id = ?", id).
		UpdateColumn("share_count", gorm.Expr("share_count + 1")).Error
	if err == nil {
		cache.InvalidateNews(ctx, id)
	}
	return err
}
