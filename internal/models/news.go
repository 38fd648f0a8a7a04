// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NewsStatus defines the lifecycle state of a news article.
type NewsStatus string

const (
	// NewsStatusDraft indicates an article not yet visible to readers.
	NewsStatusDraft NewsStatus = "draft"
	// NewsStatusPublished indicates an article visible to all readers.
	NewsStatusPublished NewsStatus = "published"
	// NewsStatusArchived indicates an article removed from reader-facing feeds.
	NewsStatusArchived NewsStatus = "archived"
)

// Known category names. Categories are seeded at setup time and referenced
// by name from News.Category.
const (
	CategoryTechnology    = "technology"
	CategoryBusiness      = "business"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryScience       = "science"
	CategoryPolitics      = "politics"
	CategoryWorld         = "world"
	CategoryLocal         = "local"
)

// KnownCategories lists every valid News.Category value.
var KnownCategories = []string{
	CategoryTechnology, CategoryBusiness, CategorySports,
	CategoryEntertainment, CategoryHealth, CategoryScience,
	CategoryPolitics, CategoryWorld, CategoryLocal,
}

// IsKnownCategory reports whether name is a valid category value.
func IsKnownCategory(name string) bool {
	for _, c := range KnownCategories {
		if c == name {
			return true
		}
	}
	return false
}

// NewsMeta holds structured optional display metadata for an article.
// It replaces the untyped metadata bag the mobile clients used to receive.
type NewsMeta struct {
	MobileOptimized bool              `json:"mobile_optimized"`
	ImageSizes      map[string]string `json:"image_sizes,omitempty"`
	ExternalLinks   []string          `json:"external_links,omitempty"`
	RelatedNews     []uint            `json:"related_news,omitempty"`
}

// News represents a news article.
type News struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Slug     string   `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Title    string   `gorm:"type:text;not null" json:"title"`
	Summary  string   `gorm:"type:text" json:"summary"`
	Content  string   `gorm:"type:text" json:"content"`
	Category string   `gorm:"size:50;index" json:"category"`
	Tags     []string `gorm:"serializer:json" json:"tags"`
	Author   string   `gorm:"size:100" json:"author"`

	SourceURL      string `json:"source_url"`
	FeaturedImage  string `json:"featured_image"`
	ThumbnailImage string `json:"thumbnail_image"`
	// ReadingTime is the estimated reading time in minutes.
	ReadingTime int `gorm:"default:0" json:"reading_time"`

	// Denormalized counters, kept in sync with interaction rows by
	// application logic. Never negative.
	ViewCount    int `gorm:"default:0;index" json:"view_count"`
	LikeCount    int `gorm:"default:0;index" json:"like_count"`
	CommentCount int `gorm:"default:0" json:"comment_count"`
	ShareCount   int `gorm:"default:0" json:"share_count"`

	Status      NewsStatus `gorm:"type:varchar(20);not null;default:'published';index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`

	Meta NewsMeta `gorm:"serializer:json" json:"metadata"`
}

// TableName specifies the table name for GORM.
func (News) TableName() string {
	return "news"
}

// NewsSummary is the lightweight projection returned by list and trending
// feeds. It intentionally carries no article body.
type NewsSummary struct {
	ID             uint       `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	Author         string     `json:"author"`
	FeaturedImage  string     `json:"featured_image"`
	ThumbnailImage string     `json:"thumbnail_image"`
	ReadingTime    int        `json:"reading_time"`
	ViewCount      int        `json:"view_count"`
	LikeCount      int        `json:"like_count"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at"`
}

// Summary converts an article into its feed projection.
func (n *News) ToSummary() NewsSummary {
	return NewsSummary{
		ID:             n.ID,
		Slug:           n.Slug,
		Title:          n.Title,
		Summary:        n.Summary,
		Category:       n.Category,
		Tags:           n.Tags,
		Author:         n.Author,
		FeaturedImage:  n.FeaturedImage,
		ThumbnailImage: n.ThumbnailImage,
		ReadingTime:    n.ReadingTime,
		ViewCount:      n.ViewCount,
		LikeCount:      n.LikeCount,
		CreatedAt:      n.CreatedAt,
		PublishedAt:    n.PublishedAt,
	}
}

// NewsList is a paginated feed page.
type NewsList struct {
	Items   []NewsSummary `json:"items"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Size    int           `json:"size"`
	HasNext bool          `json:"has_next"`
}

// NewsDetail is the full article view returned by the detail endpoint.
// ViewCount carries the post-increment value.
type NewsDetail struct {
	News
	UserInteractions map[string]bool `json:"user_interactions"`
}
